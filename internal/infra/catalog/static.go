package catalog

import (
	"context"
	"sync"

	domcatalog "booking-engine/internal/domain/catalog"
	"booking-engine/internal/infra"

	"github.com/google/uuid"
)

// StaticGateway is the bundled content source for the static profile and for
// tests. Same contract as the live gateway, no network.
type StaticGateway struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domcatalog.Product
	addOns   map[uuid.UUID][]domcatalog.AddOn
}

func NewStaticGateway() *StaticGateway {
	return &StaticGateway{
		products: make(map[uuid.UUID]domcatalog.Product),
		addOns:   make(map[uuid.UUID][]domcatalog.AddOn),
	}
}

func (g *StaticGateway) SeedProduct(p domcatalog.Product, addOns ...domcatalog.AddOn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.products[p.ID] = p
	g.addOns[p.ID] = addOns
}

func (g *StaticGateway) Product(_ context.Context, productID uuid.UUID) (*domcatalog.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.products[productID]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "catalog entity not found")
	}
	return &p, nil
}

func (g *StaticGateway) AddOns(_ context.Context, productID uuid.UUID) ([]domcatalog.AddOn, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.addOns[productID], nil
}
