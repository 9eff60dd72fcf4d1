//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type StubProduct struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	BasePriceHint string    `json:"base_price_hint,omitempty"`
}

type StubAddOn struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Type      string    `json:"type"`
}

// CatalogStub stands in for the external content provider.
type CatalogStub struct {
	mu       sync.RWMutex
	server   *httptest.Server
	products map[uuid.UUID]StubProduct
	addOns   map[uuid.UUID][]StubAddOn
}

func NewCatalogStub() *CatalogStub {
	stub := &CatalogStub{
		products: make(map[uuid.UUID]StubProduct),
		addOns:   make(map[uuid.UUID][]StubAddOn),
	}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.handle))
	return stub
}

func (s *CatalogStub) URL() string { return s.server.URL }

func (s *CatalogStub) Close() { s.server.Close() }

func (s *CatalogStub) SeedProduct(p StubProduct, addOns ...StubAddOn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	s.addOns[p.ID] = addOns
}

func (s *CatalogStub) handle(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "products" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	productID, err := uuid.Parse(parts[1])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case len(parts) == 2:
		product, ok := s.products[productID]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(product)
	case len(parts) == 3 && parts[2] == "add-ons":
		addOns := s.addOns[productID]
		if addOns == nil {
			addOns = []StubAddOn{}
		}
		_ = json.NewEncoder(w).Encode(addOns)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
