//go:build unit

package booking_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGuest(t *testing.T) booking.Guest {
	t.Helper()
	g, err := booking.NewGuest("Ada Lovelace", "ada@example.com", "+44 20 7946 0000")
	require.NoError(t, err)
	return g
}

func TestStayRange(t *testing.T) {
	checkIn := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	t.Run("nights for multi-day stay", func(t *testing.T) {
		stay, err := booking.NewStayRange(checkIn, checkIn.AddDate(0, 0, 3))
		require.NoError(t, err)
		assert.Equal(t, int32(3), stay.Nights())
		assert.Len(t, stay.Days(booking.ProductRoom), 3)
	})

	t.Run("same-day stay charges one night", func(t *testing.T) {
		stay, err := booking.NewStayRange(checkIn, checkIn)
		require.NoError(t, err)
		assert.Equal(t, int32(1), stay.Nights())
		assert.Equal(t, []time.Time{checkIn}, stay.Days(booking.ProductRoom))
	})

	t.Run("zero check-out means same-day", func(t *testing.T) {
		stay, err := booking.NewStayRange(checkIn, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, int32(1), stay.Nights())
	})

	t.Run("check-out before check-in rejected", func(t *testing.T) {
		_, err := booking.NewStayRange(checkIn, checkIn.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, booking.ErrInvalidStayRange)
	})

	t.Run("event occupies only check-in date", func(t *testing.T) {
		stay, err := booking.NewStayRange(checkIn, checkIn.AddDate(0, 0, 3))
		require.NoError(t, err)
		assert.Equal(t, []time.Time{checkIn}, stay.Days(booking.ProductEvent))
	})
}

func TestNewBooking(t *testing.T) {
	checkIn := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	stay, err := booking.NewStayRange(checkIn, checkIn.AddDate(0, 0, 2))
	require.NoError(t, err)
	guest := validGuest(t)
	now := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		b, err := booking.NewBooking("BK-TESTREF001", uuid.New(), booking.ProductRoom,
			stay, 2, 0, guest, decimal.NewFromInt(440), "EUR", nil, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.True(t, b.IsActive())
		// guest count defaults to quantity
		assert.Equal(t, int32(2), b.GuestCount())
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := booking.NewBooking("BK-TESTREF002", uuid.New(), booking.ProductRoom,
			stay, 0, 0, guest, decimal.Zero, "EUR", nil, now)
		assert.ErrorIs(t, err, booking.ErrInvalidQuantity)
	})

	t.Run("unknown product type rejected", func(t *testing.T) {
		_, err := booking.NewBooking("BK-TESTREF003", uuid.New(), booking.ProductType("cabin"),
			stay, 1, 0, guest, decimal.Zero, "EUR", nil, now)
		assert.ErrorIs(t, err, booking.ErrInvalidProductType)
	})

	t.Run("negative total rejected", func(t *testing.T) {
		_, err := booking.NewBooking("BK-TESTREF004", uuid.New(), booking.ProductRoom,
			stay, 1, 0, guest, decimal.NewFromInt(-1), "EUR", nil, now)
		assert.ErrorIs(t, err, booking.ErrNegativeTotal)
	})

	t.Run("cancel transitions confirmed to cancelled", func(t *testing.T) {
		b, err := booking.NewBooking("BK-TESTREF005", uuid.New(), booking.ProductRoom,
			stay, 1, 0, guest, decimal.NewFromInt(100), "EUR", nil, now)
		require.NoError(t, err)

		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.False(t, b.IsActive())

		// second cancel is rejected
		assert.ErrorIs(t, b.Cancel(), booking.ErrNotConfirmed)
	})
}

func TestNewReference(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		ref, err := booking.NewReference()
		require.NoError(t, err)
		assert.Len(t, ref, 13)
		assert.Equal(t, "BK-", ref[:3])
		assert.False(t, seen[ref], "reference collision: %s", ref)
		seen[ref] = true
	}
}
