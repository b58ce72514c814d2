package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", NewFieldValidation("cpf", "is required"), http.StatusBadRequest, "BAD_REQUEST"},
		{"duplicate", NewDuplicateResource("email", "a@x.com"), http.StatusConflict, "DUPLICATE_RESOURCE"},
		{"not found", NewNotFound("Client", int64(5)), http.StatusNotFound, "NOT_FOUND"},
		{"invalid operation", NewInvalidOperation("delete region", "region has associated technicians"), http.StatusUnprocessableEntity, "INVALID_OPERATION"},
		{"database", NewDatabase("save client", errors.New("connection reset")), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"wrapped duplicate", fmt.Errorf("create user: %w", NewDuplicateResource("email", "a@x.com")), http.StatusConflict, "DUPLICATE_RESOURCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := ToHTTPError(tt.err)
			require.NotNil(t, httpErr)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestToHTTPError_DatabaseDoesNotLeakCause(t *testing.T) {
	httpErr := ToHTTPError(NewDatabase("save client", errors.New("pq: password authentication failed")))

	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
	assert.NotContains(t, httpErr.Message, "password")
}

func TestToHTTPError_UnknownError(t *testing.T) {
	assert.Nil(t, ToHTTPError(errors.New("boom")))
}

func TestDuplicateResourceError_CarriesFieldAndValue(t *testing.T) {
	err := NewDuplicateResource("email", "joao@x.com")

	assert.Equal(t, "email", err.Field)
	assert.Equal(t, "joao@x.com", err.Value)
	assert.Equal(t, "email 'joao@x.com' is already in use", err.Error())

	httpErr := ToHTTPError(err)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
}

func TestNewValidation_SortsFields(t *testing.T) {
	err := NewValidation("Validation failed",
		FieldError{Field: "senha", Error: "is required"},
		FieldError{Field: "cpf", Error: "is required"},
		FieldError{Field: "email", Error: "must not be empty"},
	)

	require.Len(t, err.Fields, 3)
	assert.Equal(t, []string{"cpf", "email", "senha"}, []string{err.Fields[0].Field, err.Fields[1].Field, err.Fields[2].Field})
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(NewNotFound("User", 1)))
	assert.True(t, IsDomain(fmt.Errorf("wrap: %w", NewDatabase("x", nil))))
	assert.True(t, IsDomain(NewInternalServerError()))
	assert.False(t, IsDomain(errors.New("plain")))
	assert.False(t, IsDomain(ErrNoRecord))
}

func TestDatabaseError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewDatabase("update technician", cause)

	assert.ErrorIs(t, err, cause)
}
