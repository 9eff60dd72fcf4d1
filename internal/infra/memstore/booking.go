package memstore

import (
	"context"
	"sync"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/infra"
)

type BookingStore struct {
	mu    sync.RWMutex
	byRef map[string]*booking.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{byRef: make(map[string]*booking.Booking)}
}

func (s *BookingStore) Create(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byRef[b.Reference()]; exists {
		return infra.NewRepoErr(infra.KindDuplicateKey, "booking reference already exists")
	}
	s.byRef[b.Reference()] = b
	return nil
}

// FindByReference returns a detached copy so callers mutating the result
// never touch stored state behind the lock's back.
func (s *BookingStore) FindByReference(_ context.Context, reference string) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byRef[reference]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return copyBooking(b, b.Status()), nil
}

// UpdateStatus is a compare-and-set under the store lock, matching the
// conditional UPDATE the Postgres repository runs. A mismatch on the
// expected status reports contention, not success.
func (s *BookingStore) UpdateStatus(_ context.Context, reference string, from, to booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byRef[reference]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	if b.Status() != from {
		return infra.NewRepoErr(infra.KindContention, "booking status changed concurrently")
	}
	s.byRef[reference] = copyBooking(b, to)
	return nil
}

func copyBooking(b *booking.Booking, status booking.Status) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.Reference(), b.ProductID(), b.ProductType(), b.Stay(),
		b.Quantity(), b.GuestCount(), b.Guest(), b.TotalPrice(), b.Currency(),
		status, b.AddOns(), b.CreatedAt(),
	)
}
