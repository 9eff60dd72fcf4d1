//go:build unit || e2e

package builder

import (
	"time"

	dombooking "booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/inventory"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ProductID   uuid.UUID
	ProductType string
	CheckIn     time.Time
	CheckOut    time.Time
	Quantity    int32
	GuestCount  int32
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	Capacity    int32
	UnitPrice   decimal.Decimal
	Currency    string
}

func NewBookingBuilder() *BookingBuilder {
	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ProductID:   uuid.New(),
		ProductType: "room",
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, 2),
		Quantity:    1,
		GuestCount:  2,
		GuestName:   "Jordan Guest",
		GuestEmail:  "jordan@example.com",
		GuestPhone:  "+31612345678",
		Capacity:    5,
		UnitPrice:   decimal.NewFromInt(100),
		Currency:    "EUR",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// BuildCreateRequestMap returns the request body as a mutable map so
// handler tests can knock individual fields out.
func (b *BookingBuilder) BuildCreateRequestMap() map[string]any {
	return map[string]any{
		"product_id":   b.ProductID.String(),
		"product_type": b.ProductType,
		"check_in":     b.CheckIn.Format(time.DateOnly),
		"check_out":    b.CheckOut.Format(time.DateOnly),
		"quantity":     b.Quantity,
		"guest_count":  b.GuestCount,
		"guest": map[string]any{
			"name":  b.GuestName,
			"email": b.GuestEmail,
			"phone": b.GuestPhone,
		},
	}
}

func (b *BookingBuilder) BuildParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ProductID:   b.ProductID,
		ProductType: b.ProductType,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		Quantity:    b.Quantity,
		GuestCount:  b.GuestCount,
		GuestName:   b.GuestName,
		GuestEmail:  b.GuestEmail,
		GuestPhone:  b.GuestPhone,
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	reference, err := dombooking.NewReference()
	if err != nil {
		return nil, err
	}
	stay, err := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	guest, err := dombooking.NewGuest(b.GuestName, b.GuestEmail, b.GuestPhone)
	if err != nil {
		return nil, err
	}
	total := b.UnitPrice.Mul(decimal.NewFromInt32(b.Quantity)).Mul(decimal.NewFromInt(int64(stay.Nights())))
	return dombooking.NewBooking(
		reference,
		b.ProductID,
		dombooking.ProductType(b.ProductType),
		stay,
		b.Quantity,
		b.GuestCount,
		guest,
		total,
		b.Currency,
		nil,
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)
}

func (b *BookingBuilder) BuildView() (*queries.BookingView, error) {
	booking, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	return queries.NewBookingView(booking), nil
}

// BuildEntries returns one inventory row per day of the stay.
func (b *BookingBuilder) BuildEntries() ([]inventory.Entry, error) {
	days := inventory.DaysBetween(b.CheckIn, b.CheckOut)
	if len(days) == 0 {
		days = []time.Time{inventory.NormalizeDate(b.CheckIn)}
	}
	entries := make([]inventory.Entry, 0, len(days))
	for _, day := range days {
		entry, err := inventory.NewEntry(b.ProductID, day, b.Capacity, 0, b.UnitPrice, b.Currency, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (b *BookingBuilder) BuildProduct() catalog.Product {
	hint := b.UnitPrice
	return catalog.Product{ID: b.ProductID, Name: "Test Product", BasePriceHint: &hint}
}
