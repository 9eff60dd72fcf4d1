package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeCapacity = errors.New("capacity cannot be negative")
	ErrOverbooked       = errors.New("booked capacity exceeds total capacity")
	ErrNegativePrice    = errors.New("unit price cannot be negative")
	ErrEmptyCurrency    = errors.New("currency is required")
)

// Entry is the per-(product, date) source of truth for capacity and price.
// bookedCapacity is mutated only through the store's atomic reserve/release.
type Entry struct {
	productID      uuid.UUID
	date           time.Time
	totalCapacity  int32
	bookedCapacity int32
	unitPrice      decimal.Decimal
	currency       string
	disabled       bool
}

func NewEntry(
	productID uuid.UUID,
	date time.Time,
	totalCapacity, bookedCapacity int32,
	unitPrice decimal.Decimal,
	currency string,
	disabled bool,
) (Entry, error) {
	if totalCapacity < 0 || bookedCapacity < 0 {
		return Entry{}, ErrNegativeCapacity
	}
	if bookedCapacity > totalCapacity {
		return Entry{}, ErrOverbooked
	}
	if unitPrice.IsNegative() {
		return Entry{}, ErrNegativePrice
	}
	if currency == "" {
		return Entry{}, ErrEmptyCurrency
	}
	return Entry{
		productID:      productID,
		date:           NormalizeDate(date),
		totalCapacity:  totalCapacity,
		bookedCapacity: bookedCapacity,
		unitPrice:      unitPrice,
		currency:       currency,
		disabled:       disabled,
	}, nil
}

func (e Entry) ProductID() uuid.UUID       { return e.productID }
func (e Entry) Date() time.Time            { return e.date }
func (e Entry) TotalCapacity() int32       { return e.totalCapacity }
func (e Entry) BookedCapacity() int32      { return e.bookedCapacity }
func (e Entry) UnitPrice() decimal.Decimal { return e.unitPrice }
func (e Entry) Currency() string           { return e.currency }
func (e Entry) Disabled() bool             { return e.disabled }

func (e Entry) Remaining() int32 {
	return e.totalCapacity - e.bookedCapacity
}

func (e Entry) Bookable() bool {
	return !e.disabled && e.Remaining() > 0
}

func (e Entry) CanReserve(quantity int32) bool {
	return !e.disabled && e.bookedCapacity+quantity <= e.totalCapacity
}

// NormalizeDate truncates a timestamp to its UTC calendar day. Inventory is
// keyed by day, never by instant.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween enumerates every calendar day in [from, to).
func DaysBetween(from, to time.Time) []time.Time {
	from = NormalizeDate(from)
	to = NormalizeDate(to)
	var days []time.Time
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
