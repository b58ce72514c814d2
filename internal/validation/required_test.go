package validation

import (
	"errors"
	"testing"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredFields(t *testing.T) {
	blank := "   "
	name := "Joao"
	var missing *string

	violations := RequiredFields(map[string]any{
		"name":     name,
		"email":    "",
		"cpf":      nil,
		"password": missing,
		"city":     &blank,
		"userId":   int64(3),
	})

	assert.Equal(t, map[string]string{
		"email":    MsgEmpty,
		"cpf":      MsgRequired,
		"password": MsgRequired,
		"city":     MsgEmpty,
	}, violations)
}

func TestRequiredFields_AllPresent(t *testing.T) {
	assert.Empty(t, RequiredFields(map[string]any{"name": "Norte", "city": "Norte"}))
}

func TestRequiredFieldsError(t *testing.T) {
	assert.NoError(t, RequiredFieldsError(nil))

	err := RequiredFieldsError(map[string]string{"senha": MsgRequired, "cpf": MsgRequired})

	var validationErr *errs.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 2)
	assert.Equal(t, "cpf", validationErr.Fields[0].Field)
	assert.Equal(t, "senha", validationErr.Fields[1].Field)
}

func TestRequiredFieldsError_StableOrder(t *testing.T) {
	violations := map[string]string{
		"userId":    MsgRequired,
		"email":     MsgEmpty,
		"birthDate": MsgRequired,
		"cpf":       MsgRequired,
		"password":  MsgRequired,
	}

	for range 20 {
		var validationErr *errs.ValidationError
		require.ErrorAs(t, RequiredFieldsError(violations), &validationErr)

		got := make([]string, 0, len(validationErr.Fields))
		for _, fe := range validationErr.Fields {
			got = append(got, fe.Field)
		}
		assert.Equal(t, []string{"birthDate", "cpf", "email", "password", "userId"}, got)
	}
}
