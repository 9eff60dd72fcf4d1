// Package memstore holds in-process store variants: a per-key mutex
// inventory store and a map-backed booking repository. They back the static
// wiring profile and the unit tests; the reserve path honors the same
// atomic check-and-increment contract as the Postgres store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"booking-engine/internal/domain/inventory"
	"booking-engine/internal/infra"

	"github.com/google/uuid"
)

type entryKey struct {
	productID uuid.UUID
	date      time.Time
}

type entryState struct {
	mu    sync.Mutex
	entry inventory.Entry
}

type InventoryStore struct {
	mu      sync.RWMutex
	entries map[entryKey]*entryState
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{entries: make(map[entryKey]*entryState)}
}

// Seed installs or replaces inventory rows. Intended for wiring and tests;
// the live inventory-management process owns row creation in production.
func (s *InventoryStore) Seed(entries ...inventory.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		key := entryKey{productID: e.ProductID(), date: e.Date()}
		s.entries[key] = &entryState{entry: e}
	}
}

func (s *InventoryStore) GetRange(_ context.Context, productID uuid.UUID, from, to time.Time) ([]inventory.Entry, error) {
	from = inventory.NormalizeDate(from)
	to = inventory.NormalizeDate(to)

	s.mu.RLock()
	states := make([]*entryState, 0)
	for key, st := range s.entries {
		if key.productID == productID && !key.date.Before(from) && key.date.Before(to) {
			states = append(states, st)
		}
	}
	s.mu.RUnlock()

	out := make([]inventory.Entry, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		out = append(out, st.entry)
		st.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date().Before(out[j].Date()) })
	return out, nil
}

// Reserve performs the check-and-increment under the entry's own mutex so
// two concurrent bookings can never both observe the same free capacity.
func (s *InventoryStore) Reserve(_ context.Context, productID uuid.UUID, date time.Time, quantity int32) (inventory.Entry, error) {
	st, ok := s.lookup(productID, date)
	if !ok {
		return inventory.Entry{}, infra.NewRepoErr(infra.KindNotFound, "no inventory configured")
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.entry.CanReserve(quantity) {
		return inventory.Entry{}, infra.NewRepoErr(infra.KindInsufficientCapacity, "insufficient remaining capacity")
	}

	updated, err := inventory.NewEntry(
		st.entry.ProductID(),
		st.entry.Date(),
		st.entry.TotalCapacity(),
		st.entry.BookedCapacity()+quantity,
		st.entry.UnitPrice(),
		st.entry.Currency(),
		st.entry.Disabled(),
	)
	if err != nil {
		return inventory.Entry{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to update entry", err)
	}
	st.entry = updated
	return updated, nil
}

func (s *InventoryStore) Release(_ context.Context, productID uuid.UUID, date time.Time, quantity int32) error {
	st, ok := s.lookup(productID, date)
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "no inventory configured")
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	booked := st.entry.BookedCapacity() - quantity
	if booked < 0 {
		booked = 0
	}
	updated, err := inventory.NewEntry(
		st.entry.ProductID(),
		st.entry.Date(),
		st.entry.TotalCapacity(),
		booked,
		st.entry.UnitPrice(),
		st.entry.Currency(),
		st.entry.Disabled(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update entry", err)
	}
	st.entry = updated
	return nil
}

// Entry returns a point-in-time copy, mainly for test assertions.
func (s *InventoryStore) Entry(productID uuid.UUID, date time.Time) (inventory.Entry, bool) {
	st, ok := s.lookup(productID, date)
	if !ok {
		return inventory.Entry{}, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.entry, true
}

func (s *InventoryStore) lookup(productID uuid.UUID, date time.Time) (*entryState, bool) {
	key := entryKey{productID: productID, date: inventory.NormalizeDate(date)}
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.entries[key]
	return st, ok
}
