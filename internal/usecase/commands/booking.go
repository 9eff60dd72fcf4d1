package commands

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/inventory"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddOnSelectionParams struct {
	AddOnID  uuid.UUID
	Quantity int32
}

type CreateBookingParams struct {
	ProductID   uuid.UUID
	ProductType string
	CheckIn     time.Time
	CheckOut    time.Time
	Quantity    int32
	GuestCount  int32
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	AddOns      []AddOnSelectionParams
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, reference string) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	inventory  InventoryStore
	bookings   BookingRepository
	catalog    CatalogGateway
	calculator booking.PriceCalculator
	clock      clock.Clock
	cfg        config.BookingConfig
}

func NewBookingCommands(
	inventory InventoryStore,
	bookings BookingRepository,
	catalogGateway CatalogGateway,
	calculator booking.PriceCalculator,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		inventory:  inventory,
		bookings:   bookings,
		catalog:    catalogGateway,
		calculator: calculator,
		clock:      clk,
		cfg:        cfg,
	}
}

// CreateBooking runs the allocation state machine: validate, reserve every
// day of the stay, price, persist, confirm. Reservation is all-or-nothing:
// any failure after a partial reserve releases every hold acquired by this
// attempt before the error surfaces.
func (u *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error) {
	productType, stay, guest, err := u.validate(params)
	if err != nil {
		return nil, err
	}

	addOns, err := u.resolveAddOns(ctx, params.ProductID, params.AddOns)
	if err != nil {
		return nil, err
	}

	attempt := &reservationAttempt{
		store:     u.inventory,
		productID: params.ProductID,
		quantity:  params.Quantity,
	}
	committed := false
	defer func() {
		if !committed {
			// The caller aborting must not strand partial holds, so the
			// cleanup context survives cancellation.
			attempt.releaseAll(context.WithoutCancel(ctx))
		}
	}()

	days := stay.Days(productType)
	dayPrices := make([]booking.DayPrice, 0, len(days))
	currency := ""
	for _, day := range days {
		entry, reserveErr := u.reserveWithRetry(ctx, params.ProductID, day, params.Quantity)
		if reserveErr != nil {
			return nil, reserveErr
		}
		attempt.held = append(attempt.held, day)

		if currency == "" {
			currency = entry.Currency()
		} else if entry.Currency() != currency {
			slog.Warn("currency mismatch across reserved days",
				"product_id", params.ProductID,
				"date", day.Format(time.DateOnly),
				"expected", currency,
				"got", entry.Currency())
		}
		dayPrices = append(dayPrices, booking.DayPrice{Date: day, UnitPrice: entry.UnitPrice()})
	}

	total := u.calculator.Calculate(productType, dayPrices, params.Quantity, addOns, stay.Nights(), params.GuestCount)

	view, err := u.persist(ctx, params, productType, stay, guest, total, currency, addOns)
	if err != nil {
		return nil, err
	}

	committed = true
	return view, nil
}

func (u *bookingCommandsImpl) CancelBooking(ctx context.Context, reference string) (*queries.BookingView, error) {
	b, err := u.bookings.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}

	if cancelErr := b.Cancel(); cancelErr != nil {
		return nil, errs.Mark(cancelErr, errs.ErrBookingNotCancelable)
	}

	// The conditional transition is the authority on the cancel race:
	// whichever caller flips confirmed to cancelled owns the release below,
	// so a booking's capacity is given back exactly once.
	if err := u.bookings.UpdateStatus(ctx, reference, booking.StatusConfirmed, booking.StatusCancelled); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.ErrBookingNotFound
		case infra.IsKind(err, infra.KindContention):
			return nil, errs.Mark(err, errs.ErrBookingNotCancelable)
		default:
			return nil, errs.Mark(err, errs.ErrPersistenceFailed)
		}
	}

	// Releasing after the status flip keeps the invariant: booked capacity
	// equals the sum of active bookings per day.
	releaseCtx := context.WithoutCancel(ctx)
	for _, day := range b.Stay().Days(b.ProductType()) {
		if err := u.inventory.Release(releaseCtx, b.ProductID(), day, b.Quantity()); err != nil {
			slog.Error("failed to release capacity on cancellation",
				"reference", reference,
				"date", day.Format(time.DateOnly),
				"error", err)
		}
	}

	return queries.NewBookingView(b), nil
}

func (u *bookingCommandsImpl) validate(params CreateBookingParams) (booking.ProductType, booking.StayRange, booking.Guest, error) {
	var (
		pt   booking.ProductType
		stay booking.StayRange
		g    booking.Guest
	)

	if params.ProductID == uuid.Nil {
		return pt, stay, g, errs.Mark(errs.New("product id is required"), errs.ErrInvalidRequest)
	}
	pt = booking.ProductType(params.ProductType)
	if !pt.IsValid() {
		return pt, stay, g, errs.Mark(errs.Newf("unknown product type %q", params.ProductType), errs.ErrInvalidRequest)
	}
	if params.Quantity < 1 {
		return pt, stay, g, errs.Mark(errs.New("quantity must be at least 1"), errs.ErrInvalidRequest)
	}
	if params.CheckIn.IsZero() {
		return pt, stay, g, errs.Mark(errs.New("check-in date is required"), errs.ErrInvalidRequest)
	}

	stay, err := booking.NewStayRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return pt, stay, g, errs.Mark(err, errs.ErrInvalidRequest)
	}
	g, err = booking.NewGuest(params.GuestName, params.GuestEmail, params.GuestPhone)
	if err != nil {
		return pt, stay, g, errs.Mark(err, errs.ErrInvalidRequest)
	}
	return pt, stay, g, nil
}

func (u *bookingCommandsImpl) resolveAddOns(
	ctx context.Context,
	productID uuid.UUID,
	selections []AddOnSelectionParams,
) ([]booking.AddOnSelection, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	available, err := u.catalog.AddOns(ctx, productID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to resolve add-ons from catalog")
	}
	byID := make(map[uuid.UUID]catalog.AddOn, len(available))
	for _, a := range available {
		byID[a.ID] = a
	}

	resolved := make([]booking.AddOnSelection, 0, len(selections))
	for _, sel := range selections {
		if sel.Quantity < 1 {
			return nil, errs.Mark(errs.New("add-on quantity must be at least 1"), errs.ErrInvalidRequest)
		}
		addOn, ok := byID[sel.AddOnID]
		if !ok {
			return nil, errs.Mark(errs.Newf("unknown add-on %s", sel.AddOnID), errs.ErrInvalidRequest)
		}
		resolved = append(resolved, booking.AddOnSelection{
			AddOnID:   addOn.ID,
			Name:      addOn.Name,
			UnitPrice: addOn.UnitPrice,
			Type:      addOn.Type,
			Quantity:  sel.Quantity,
		})
	}
	return resolved, nil
}

// reserveWithRetry applies a short bounded retry on contention and otherwise
// fails fast. Exhausted retries surface as CapacityUnavailable per the error
// taxonomy.
func (u *bookingCommandsImpl) reserveWithRetry(
	ctx context.Context,
	productID uuid.UUID,
	day time.Time,
	quantity int32,
) (entry inventory.Entry, err error) {
	for i := 0; ; i++ {
		entry, err = u.inventory.Reserve(ctx, productID, day, quantity)
		if err == nil {
			return entry, nil
		}

		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return entry, errs.Mark(err, errs.ErrNotConfigured)
		case infra.IsKind(err, infra.KindInsufficientCapacity):
			return entry, errs.Mark(err, errs.ErrCapacityUnavailable)
		case infra.IsKind(err, infra.KindContention):
			if i >= u.cfg.ReserveRetries {
				slog.Warn("reservation lost concurrent update after retries",
					"product_id", productID,
					"date", day.Format(time.DateOnly),
					"attempts", i+1)
				return entry, errs.Mark(errs.Mark(err, errs.ErrReservationRaceLost), errs.ErrCapacityUnavailable)
			}
			wait := time.Duration(i+1) * 50 * time.Millisecond
			select {
			case <-ctx.Done():
				return entry, ctx.Err()
			case <-time.After(wait):
			}
		default:
			return entry, errs.Mark(err, errs.ErrPersistenceFailed)
		}
	}
}

func (u *bookingCommandsImpl) persist(
	ctx context.Context,
	params CreateBookingParams,
	productType booking.ProductType,
	stay booking.StayRange,
	guest booking.Guest,
	total decimal.Decimal,
	currency string,
	addOns []booking.AddOnSelection,
) (*queries.BookingView, error) {
	for i := 0; ; i++ {
		reference, err := booking.NewReference()
		if err != nil {
			return nil, errs.Mark(err, errs.ErrPersistenceFailed)
		}

		b, err := booking.NewBooking(
			reference,
			params.ProductID,
			productType,
			stay,
			params.Quantity,
			params.GuestCount,
			guest,
			total,
			currency,
			addOns,
			u.clock.Now(),
		)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidRequest)
		}

		createErr := u.bookings.Create(ctx, b)
		if createErr == nil {
			return queries.NewBookingView(b), nil
		}
		if infra.IsKind(createErr, infra.KindDuplicateKey) && i < u.cfg.ReferenceRetries {
			continue
		}
		return nil, errs.Mark(createErr, errs.ErrPersistenceFailed)
	}
}

// reservationAttempt tracks the per-day holds acquired so far so any exit
// path before commit can release them all.
type reservationAttempt struct {
	store     InventoryStore
	productID uuid.UUID
	quantity  int32
	held      []time.Time
}

func (a *reservationAttempt) releaseAll(ctx context.Context) {
	for _, day := range a.held {
		if err := a.store.Release(ctx, a.productID, day, a.quantity); err != nil {
			slog.Error("failed to release hold after aborted booking attempt",
				"product_id", a.productID,
				"date", day.Format(time.DateOnly),
				"error", err)
		}
	}
	a.held = nil
}
