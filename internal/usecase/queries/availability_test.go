//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"booking-engine/internal/domain/inventory"
	infracatalog "booking-engine/internal/infra/catalog"
	"booking-engine/internal/infra/memstore"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/queries"
	"booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvailabilityFixture(t *testing.T, b *builder.BookingBuilder) (queries.AvailabilityQueries, *memstore.InventoryStore) {
	t.Helper()

	store := memstore.NewInventoryStore()
	gateway := infracatalog.NewStaticGateway()
	gateway.SeedProduct(b.BuildProduct())

	entries, err := b.BuildEntries()
	require.NoError(t, err)
	store.Seed(entries...)

	return queries.NewAvailabilityQueries(store, gateway), store
}

func TestGetAvailability_ReportsConfiguredDays(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()
	q, _ := newAvailabilityFixture(t, b)

	view, err := q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckIn.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, b.ProductID, view.ProductID)
	assert.Equal(t, "Test Product", view.ProductName)
	assert.Equal(t, "EUR", view.Currency)
	require.Len(t, view.Days, 2)
	for _, day := range view.Days {
		assert.True(t, day.Available)
		assert.False(t, day.NotConfigured)
		assert.Equal(t, int32(5), day.UnitsAvailable)
		require.NotNil(t, day.Price)
		assert.True(t, day.Price.Equal(decimal.NewFromInt(100)))
	}
}

func TestGetAvailability_DistinguishesNotConfiguredFromSoldOut(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()

	store := memstore.NewInventoryStore()
	gateway := infracatalog.NewStaticGateway()

	soldOut, err := inventory.NewEntry(b.ProductID, b.CheckIn, 3, 3, b.UnitPrice, "EUR", false)
	require.NoError(t, err)
	store.Seed(soldOut)
	// The following day has no row at all.

	q := queries.NewAvailabilityQueries(store, gateway)
	view, err := q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckIn.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, view.Days, 2)

	assert.False(t, view.Days[0].Available)
	assert.False(t, view.Days[0].NotConfigured)
	assert.Equal(t, int32(0), view.Days[0].UnitsAvailable)

	assert.False(t, view.Days[1].Available)
	assert.True(t, view.Days[1].NotConfigured)
	assert.Nil(t, view.Days[1].Price)
}

func TestGetAvailability_DisabledDayNotBookable(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()

	store := memstore.NewInventoryStore()
	disabled, err := inventory.NewEntry(b.ProductID, b.CheckIn, 5, 0, b.UnitPrice, "EUR", true)
	require.NoError(t, err)
	store.Seed(disabled)

	q := queries.NewAvailabilityQueries(store, infracatalog.NewStaticGateway())
	view, err := q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckIn.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, view.Days, 1)
	assert.False(t, view.Days[0].Available)
	assert.Equal(t, int32(5), view.Days[0].UnitsAvailable)
}

func TestGetAvailability_MissingProductStillServesCalendar(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()

	store := memstore.NewInventoryStore()
	entries, err := b.BuildEntries()
	require.NoError(t, err)
	store.Seed(entries...)

	// Gateway knows nothing about the product; the calendar must not fail.
	q := queries.NewAvailabilityQueries(store, infracatalog.NewStaticGateway())
	view, err := q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckOut)
	require.NoError(t, err)
	assert.Empty(t, view.ProductName)
	assert.Len(t, view.Days, 2)
}

func TestGetAvailability_InvalidInput(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()
	q, _ := newAvailabilityFixture(t, b)

	_, err := q.GetAvailability(ctx, uuid.Nil, b.CheckIn, b.CheckOut)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	_, err = q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckIn)
	assert.ErrorIs(t, err, errs.ErrInvalidRange)

	_, err = q.GetAvailability(ctx, b.ProductID, b.CheckOut, b.CheckIn)
	assert.ErrorIs(t, err, errs.ErrInvalidRange)
}

func TestGetAvailability_ReadDoesNotMutateState(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()
	q, store := newAvailabilityFixture(t, b)

	for i := 0; i < 3; i++ {
		_, err := q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckOut)
		require.NoError(t, err)
	}

	entry, ok := store.Entry(b.ProductID, b.CheckIn)
	require.True(t, ok)
	assert.Equal(t, int32(0), entry.BookedCapacity())
}

func TestGetAvailability_RepeatedReadsAreIdentical(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()
	q, _ := newAvailabilityFixture(t, b)

	first, err := q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckOut)
	require.NoError(t, err)
	second, err := q.GetAvailability(ctx, b.ProductID, b.CheckIn, b.CheckOut)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetAvailability_NormalizesTimestamps(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()
	q, _ := newAvailabilityFixture(t, b)

	// Mid-day timestamps collapse onto their UTC date.
	from := b.CheckIn.Add(15 * time.Hour)
	to := b.CheckOut.Add(3 * time.Hour)
	view, err := q.GetAvailability(ctx, b.ProductID, from, to)
	require.NoError(t, err)
	assert.Equal(t, b.CheckIn.Format(time.DateOnly), view.From)
	assert.Len(t, view.Days, 2)
}
