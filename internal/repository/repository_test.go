package repository

import (
	"errors"
	"testing"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoRecord(t *testing.T) {
	assert.ErrorIs(t, noRecord(pgx.ErrNoRows), errs.ErrNoRecord)

	other := errors.New("conn reset")
	assert.Equal(t, other, noRecord(other))
	assert.NoError(t, noRecord(nil))
}

func TestAffectedOne(t *testing.T) {
	assert.ErrorIs(t, affectedOne(pgconn.NewCommandTag("DELETE 0"), nil), errs.ErrNoRecord)
	assert.NoError(t, affectedOne(pgconn.NewCommandTag("UPDATE 1"), nil))

	cause := errors.New("boom")
	assert.Equal(t, cause, affectedOne(pgconn.CommandTag{}, cause))
}

func TestStatusArg(t *testing.T) {
	assert.Nil(t, statusArg(nil))

	s := statusArg(model.Ptr(model.StatusInactive))
	require.NotNil(t, s)
	assert.Equal(t, "INATIVO", *s)
}

func TestDecimalHelpers(t *testing.T) {
	d, err := parseDecimal("150.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("150.5")))

	_, err = parseDecimal("abc")
	assert.Error(t, err)

	nd, err := parseNullDecimal(nil)
	require.NoError(t, err)
	assert.False(t, nd.Valid)
	assert.Nil(t, nullDecimalArg(nd))

	price := "99.9"
	nd, err = parseNullDecimal(&price)
	require.NoError(t, err)
	require.True(t, nd.Valid)
	assert.Equal(t, "99.90", *nullDecimalArg(nd))
}
