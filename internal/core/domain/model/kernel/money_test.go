package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("should round to two places", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
		require.NoError(t, m.Validate())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject non numeric strings", func(t *testing.T) {
		_, err := kernel.MoneyFromString("twelve")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var m kernel.Money

		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("should add and multiply", func(t *testing.T) {
		price := mustMoney(t, "450.50")

		assert.Equal(t, "901.00", price.MulInt(2).String())
		assert.Equal(t, "901.00", price.Add(price).String())
	})

	t.Run("should apply a rate", func(t *testing.T) {
		tax, err := mustMoney(t, "45000").MulRate(decimal.RequireFromString("0.18"))

		require.NoError(t, err)
		assert.Equal(t, "8100.00", tax.String())
	})

	t.Run("should refuse to go below zero", func(t *testing.T) {
		_, err := mustMoney(t, "5").Sub(mustMoney(t, "6"))

		require.Error(t, err)
	})

	t.Run("should clamp at zero and flag it", func(t *testing.T) {
		got, clamped := mustMoney(t, "5").SubClamped(mustMoney(t, "6"))

		assert.True(t, clamped)
		assert.True(t, got.IsZero())

		got, clamped = mustMoney(t, "5").SubClamped(mustMoney(t, "2"))

		assert.False(t, clamped)
		assert.Equal(t, "3.00", got.String())
	})

	t.Run("should compare within tolerance", func(t *testing.T) {
		tolerance := decimal.RequireFromString("0.01")

		assert.True(t, mustMoney(t, "100.00").WithinTolerance(mustMoney(t, "100.01"), tolerance))
		assert.False(t, mustMoney(t, "100.00").WithinTolerance(mustMoney(t, "100.02"), tolerance))
	})
}
