package commands

import (
	"context"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/inventory"

	"github.com/google/uuid"
)

// InventoryStore is the write-side capacity contract. Reserve is the central
// concurrency-safety primitive: the check-and-increment must be indivisible
// with respect to concurrent callers for the same (product, date) key.
type InventoryStore interface {
	// Reserve atomically increments booked capacity by quantity if the
	// entry exists, is not disabled, and has room. Returns the entry as
	// it stands after the increment.
	Reserve(ctx context.Context, productID uuid.UUID, date time.Time, quantity int32) (inventory.Entry, error)
	// Release decrements booked capacity, floored at zero.
	Release(ctx context.Context, productID uuid.UUID, date time.Time, quantity int32) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByReference(ctx context.Context, reference string) (*booking.Booking, error)
	// UpdateStatus transitions the booking from one status to another as a
	// single compare-and-set. A booking that exists but is no longer in the
	// expected status fails with KindContention, so concurrent cancels of
	// the same reference resolve to exactly one winner.
	UpdateStatus(ctx context.Context, reference string, from, to booking.Status) error
}

// CatalogGateway is the narrow read contract consumed from the external
// content provider. Best-effort enrichment; only add-on unit prices feed
// into capacity/pricing arithmetic.
type CatalogGateway interface {
	Product(ctx context.Context, productID uuid.UUID) (*catalog.Product, error)
	AddOns(ctx context.Context, productID uuid.UUID) ([]catalog.AddOn, error)
}
