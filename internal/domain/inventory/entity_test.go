//go:build unit

package inventory_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	productID := uuid.New()
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		e, err := inventory.NewEntry(productID, date, 10, 3, decimal.NewFromInt(150), "EUR", false)
		require.NoError(t, err)

		assert.Equal(t, int32(7), e.Remaining())
		assert.True(t, e.Bookable())
		assert.True(t, e.CanReserve(7))
		assert.False(t, e.CanReserve(8))
	})

	t.Run("validation", func(t *testing.T) {
		testCases := []struct {
			name     string
			total    int32
			booked   int32
			price    decimal.Decimal
			currency string
			errIs    error
		}{
			{name: "negative total", total: -1, booked: 0, price: decimal.Zero, currency: "EUR", errIs: inventory.ErrNegativeCapacity},
			{name: "negative booked", total: 5, booked: -1, price: decimal.Zero, currency: "EUR", errIs: inventory.ErrNegativeCapacity},
			{name: "booked exceeds total", total: 5, booked: 6, price: decimal.Zero, currency: "EUR", errIs: inventory.ErrOverbooked},
			{name: "negative price", total: 5, booked: 0, price: decimal.NewFromInt(-1), currency: "EUR", errIs: inventory.ErrNegativePrice},
			{name: "missing currency", total: 5, booked: 0, price: decimal.Zero, currency: "", errIs: inventory.ErrEmptyCurrency},
			{name: "fully booked is valid", total: 5, booked: 5, price: decimal.Zero, currency: "EUR"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := inventory.NewEntry(productID, date, tc.total, tc.booked, tc.price, tc.currency, false)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("disabled entry is never bookable", func(t *testing.T) {
		e, err := inventory.NewEntry(productID, date, 10, 0, decimal.NewFromInt(80), "EUR", true)
		require.NoError(t, err)

		assert.False(t, e.Bookable())
		assert.False(t, e.CanReserve(1))
	})

	t.Run("date is normalized to UTC midnight", func(t *testing.T) {
		loc := time.FixedZone("CEST", 2*60*60)
		e, err := inventory.NewEntry(productID, time.Date(2026, 7, 14, 15, 30, 0, 0, loc), 1, 0, decimal.Zero, "EUR", false)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), e.Date())
	})
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	t.Run("three day range", func(t *testing.T) {
		days := inventory.DaysBetween(from, from.AddDate(0, 0, 3))
		require.Len(t, days, 3)
		assert.Equal(t, from, days[0])
		assert.Equal(t, from.AddDate(0, 0, 2), days[2])
	})

	t.Run("empty range", func(t *testing.T) {
		assert.Empty(t, inventory.DaysBetween(from, from))
	})

	t.Run("inverted range", func(t *testing.T) {
		assert.Empty(t, inventory.DaysBetween(from.AddDate(0, 0, 1), from))
	})
}
