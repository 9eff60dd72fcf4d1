//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/inventory"
	infracatalog "booking-engine/internal/infra/catalog"
	"booking-engine/internal/infra/memstore"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/commands"
	"booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandsFixture struct {
	inventory *memstore.InventoryStore
	bookings  *memstore.BookingStore
	catalog   *infracatalog.StaticGateway
	clock     *clock.MockClock
	commands  commands.BookingCommands
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	t.Helper()

	f := &commandsFixture{
		inventory: memstore.NewInventoryStore(),
		bookings:  memstore.NewBookingStore(),
		catalog:   infracatalog.NewStaticGateway(),
		clock:     clock.NewMockClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.commands = commands.NewBookingCommands(
		f.inventory,
		f.bookings,
		f.catalog,
		booking.NewStandardPriceCalculator(),
		f.clock,
		config.BookingConfig{ReserveRetries: 3, ReferenceRetries: 3},
	)
	return f
}

func (f *commandsFixture) seed(t *testing.T, b *builder.BookingBuilder) {
	t.Helper()

	entries, err := b.BuildEntries()
	require.NoError(t, err)
	f.inventory.Seed(entries...)
	f.catalog.SeedProduct(b.BuildProduct())
}

func (f *commandsFixture) booked(t *testing.T, productID uuid.UUID, date time.Time) int32 {
	t.Helper()

	entry, ok := f.inventory.Entry(productID, date)
	require.True(t, ok, "expected inventory entry for %s", date.Format(time.DateOnly))
	return entry.BookedCapacity()
}

func TestCreateBooking_Success(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	f.seed(t, b)

	view, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.NoError(t, err)

	assert.NotEmpty(t, view.Reference)
	assert.Equal(t, "confirmed", view.Status)
	assert.Equal(t, b.ProductID, view.ProductID)
	// 2 nights x 100 x quantity 1
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(200)),
		"expected total 200, got %s", view.TotalPrice)
	assert.Equal(t, "EUR", view.Currency)

	for _, day := range inventory.DaysBetween(b.CheckIn, b.CheckOut) {
		assert.Equal(t, int32(1), f.booked(t, b.ProductID, day))
	}
}

func TestCreateBooking_TotalUsesPerDayPrices(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	f.catalog.SeedProduct(b.BuildProduct())

	// Different nightly rates must each contribute their own day.
	prices := []int64{100, 120, 150}
	for i, p := range prices {
		entry, err := inventory.NewEntry(b.ProductID, b.CheckIn.AddDate(0, 0, i), 5, 0, decimal.NewFromInt(p), "EUR", false)
		require.NoError(t, err)
		f.inventory.Seed(entry)
	}
	b.CheckOut = b.CheckIn.AddDate(0, 0, 3)
	b.Quantity = 2

	view, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.NoError(t, err)
	// (100+120+150) x 2 units
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(740)),
		"expected total 740, got %s", view.TotalPrice)
}

func TestCreateBooking_WithAddOns(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()

	entries, err := b.BuildEntries()
	require.NoError(t, err)
	f.inventory.Seed(entries...)

	breakfastID := uuid.New()
	transferID := uuid.New()
	f.catalog.SeedProduct(
		b.BuildProduct(),
		catalog.AddOn{ID: breakfastID, Name: "Breakfast", UnitPrice: decimal.NewFromInt(10), Type: catalog.AddOnPerNight},
		catalog.AddOn{ID: transferID, Name: "Airport Transfer", UnitPrice: decimal.NewFromInt(30), Type: catalog.AddOnOneTime},
	)

	params := b.BuildParams()
	params.AddOns = []commands.AddOnSelectionParams{
		{AddOnID: breakfastID, Quantity: 1},
		{AddOnID: transferID, Quantity: 1},
	}

	view, err := f.commands.CreateBooking(ctx, params)
	require.NoError(t, err)
	// 2 nights x 100 + breakfast 10 x 2 nights + transfer 30
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(250)),
		"expected total 250, got %s", view.TotalPrice)
	assert.Len(t, view.AddOns, 2)
}

func TestCreateBooking_UnknownAddOnRejected(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	f.seed(t, b)

	params := b.BuildParams()
	params.AddOns = []commands.AddOnSelectionParams{{AddOnID: uuid.New(), Quantity: 1}}

	_, err := f.commands.CreateBooking(ctx, params)
	require.ErrorIs(t, err, errs.ErrInvalidRequest)

	// Rejected before any day is held.
	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn))
}

func TestCreateBooking_MissingDayLeavesNoPartialHolds(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	b.CheckOut = b.CheckIn.AddDate(0, 0, 3)
	f.catalog.SeedProduct(b.BuildProduct())

	// Day 2 has no inventory row at all.
	for _, i := range []int{0, 2} {
		entry, err := inventory.NewEntry(b.ProductID, b.CheckIn.AddDate(0, 0, i), 5, 0, b.UnitPrice, "EUR", false)
		require.NoError(t, err)
		f.inventory.Seed(entry)
	}

	_, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.ErrorIs(t, err, errs.ErrNotConfigured)

	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn))
	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn.AddDate(0, 0, 2)))
}

func TestCreateBooking_FullDayRollsBackEarlierHolds(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	b.CheckOut = b.CheckIn.AddDate(0, 0, 3)
	f.catalog.SeedProduct(b.BuildProduct())

	for i := 0; i < 3; i++ {
		capacity := int32(5)
		booked := int32(0)
		if i == 1 {
			booked = capacity // day 2 already sold out
		}
		entry, err := inventory.NewEntry(b.ProductID, b.CheckIn.AddDate(0, 0, i), capacity, booked, b.UnitPrice, "EUR", false)
		require.NoError(t, err)
		f.inventory.Seed(entry)
	}

	_, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.ErrorIs(t, err, errs.ErrCapacityUnavailable)

	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn),
		"hold on day 1 must be released after day 2 fails")
	assert.Equal(t, int32(5), f.booked(t, b.ProductID, b.CheckIn.AddDate(0, 0, 1)))
	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn.AddDate(0, 0, 2)))
}

func TestCreateBooking_DisabledDayUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	f.catalog.SeedProduct(b.BuildProduct())

	entry, err := inventory.NewEntry(b.ProductID, b.CheckIn, 5, 0, b.UnitPrice, "EUR", true)
	require.NoError(t, err)
	f.inventory.Seed(entry)
	b.CheckOut = b.CheckIn

	_, err = f.commands.CreateBooking(ctx, b.BuildParams())
	require.ErrorIs(t, err, errs.ErrCapacityUnavailable)
}

func TestCreateBooking_EventHoldsOnlyCheckInDay(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	b.ProductType = "event"
	b.CheckOut = b.CheckIn.AddDate(0, 0, 2)
	f.seed(t, b)

	view, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.booked(t, b.ProductID, b.CheckIn))
	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn.AddDate(0, 0, 1)),
		"events must not hold capacity past the check-in day")
	// Single day priced once despite the range.
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(100)),
		"expected total 100, got %s", view.TotalPrice)
}

func TestCreateBooking_SameDayStayIsOneNight(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	b.CheckOut = b.CheckIn
	f.seed(t, b)

	view, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.NoError(t, err)
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(100)),
		"expected total 100, got %s", view.TotalPrice)
	assert.Equal(t, int32(1), f.booked(t, b.ProductID, b.CheckIn))
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	f.seed(t, b)

	testCases := []struct {
		name   string
		mutate func(*commands.CreateBookingParams)
	}{
		{name: "nil product id", mutate: func(p *commands.CreateBookingParams) { p.ProductID = uuid.Nil }},
		{name: "unknown product type", mutate: func(p *commands.CreateBookingParams) { p.ProductType = "cruise" }},
		{name: "zero quantity", mutate: func(p *commands.CreateBookingParams) { p.Quantity = 0 }},
		{name: "zero check-in", mutate: func(p *commands.CreateBookingParams) { p.CheckIn = time.Time{} }},
		{name: "check-out before check-in", mutate: func(p *commands.CreateBookingParams) { p.CheckOut = p.CheckIn.AddDate(0, 0, -1) }},
		{name: "missing guest name", mutate: func(p *commands.CreateBookingParams) { p.GuestName = "" }},
		{name: "missing guest email", mutate: func(p *commands.CreateBookingParams) { p.GuestEmail = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := b.BuildParams()
			tc.mutate(&params)
			_, err := f.commands.CreateBooking(ctx, params)
			assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		})
	}

	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn))
}

// Capacity 1 and many concurrent attempts: exactly one booking may win.
func TestCreateBooking_ConcurrentAttemptsNeverOversell(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	b.Capacity = 1
	f.seed(t, b)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.commands.CreateBooking(ctx, b.BuildParams())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, errs.ErrCapacityUnavailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one attempt may claim the last unit")
	assert.Equal(t, attempts-1, conflicts)
	for _, day := range inventory.DaysBetween(b.CheckIn, b.CheckOut) {
		assert.Equal(t, int32(1), f.booked(t, b.ProductID, day))
	}
}

func TestCancelBooking_ReleasesCapacity(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	f.seed(t, b)

	created, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.NoError(t, err)
	require.Equal(t, int32(1), f.booked(t, b.ProductID, b.CheckIn))

	cancelled, err := f.commands.CancelBooking(ctx, created.Reference)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	for _, day := range inventory.DaysBetween(b.CheckIn, b.CheckOut) {
		assert.Equal(t, int32(0), f.booked(t, b.ProductID, day))
	}
}

func TestCancelBooking_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)

	_, err := f.commands.CancelBooking(ctx, "BK-0000000000")
	assert.ErrorIs(t, err, errs.ErrBookingNotFound)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder()
	f.seed(t, b)

	created, err := f.commands.CreateBooking(ctx, b.BuildParams())
	require.NoError(t, err)

	_, err = f.commands.CancelBooking(ctx, created.Reference)
	require.NoError(t, err)

	_, err = f.commands.CancelBooking(ctx, created.Reference)
	assert.ErrorIs(t, err, errs.ErrBookingNotCancelable)
}

func TestCancelBooking_ConcurrentCancelsReleaseOnce(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Capacity = 10
	})
	f.seed(t, b)

	// A second active booking on the same days: if the cancel released
	// twice, booked capacity would drop below this booking's share.
	_, err := f.commands.CreateBooking(ctx, b.With(func(b *builder.BookingBuilder) {
		b.Quantity = 3
		b.GuestCount = 3
	}).BuildParams())
	require.NoError(t, err)

	target, err := f.commands.CreateBooking(ctx, b.With(func(b *builder.BookingBuilder) {
		b.Quantity = 2
		b.GuestCount = 2
	}).BuildParams())
	require.NoError(t, err)
	require.Equal(t, int32(5), f.booked(t, b.ProductID, b.CheckIn))

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, cancelErr := f.commands.CancelBooking(ctx, target.Reference)
			results <- cancelErr
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for err := range results {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, errs.ErrBookingNotCancelable)
		}
	}
	assert.Equal(t, 1, won, "exactly one cancel must win")

	// The winner released quantity 2 exactly once; the other booking's
	// 3 units stay held.
	for _, day := range inventory.DaysBetween(b.CheckIn, b.CheckOut) {
		assert.Equal(t, int32(3), f.booked(t, b.ProductID, day))
	}

	// Double cancel must not release twice.
	assert.Equal(t, int32(0), f.booked(t, b.ProductID, b.CheckIn))
}
