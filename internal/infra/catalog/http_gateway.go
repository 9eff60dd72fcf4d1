// Package catalog provides the content-provider gateway variants. Selection
// between them happens once at process wiring, never re-checked per call.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	domcatalog "booking-engine/internal/domain/catalog"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HTTPGateway reads product and add-on metadata from the live content
// provider. Responses are enrichment only; a slow or failing provider must
// never take bookings down, hence the short client timeout.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(cfg config.CatalogConfig) *HTTPGateway {
	return &HTTPGateway{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type productPayload struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	BasePriceHint *decimal.Decimal `json:"base_price_hint,omitempty"`
}

type addOnPayload struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Type      string          `json:"type"`
}

func (g *HTTPGateway) Product(ctx context.Context, productID uuid.UUID) (*domcatalog.Product, error) {
	var payload productPayload
	if err := g.getJSON(ctx, fmt.Sprintf("/products/%s", productID), &payload); err != nil {
		return nil, err
	}
	return &domcatalog.Product{
		ID:            payload.ID,
		Name:          payload.Name,
		BasePriceHint: payload.BasePriceHint,
	}, nil
}

func (g *HTTPGateway) AddOns(ctx context.Context, productID uuid.UUID) ([]domcatalog.AddOn, error) {
	var payload []addOnPayload
	if err := g.getJSON(ctx, fmt.Sprintf("/products/%s/add-ons", productID), &payload); err != nil {
		return nil, err
	}
	addOns := make([]domcatalog.AddOn, 0, len(payload))
	for _, p := range payload {
		addOnType := domcatalog.AddOnType(p.Type)
		if !addOnType.IsValid() {
			// Unknown pricing types from the provider are skipped, not
			// guessed at
			continue
		}
		addOns = append(addOns, domcatalog.AddOn{
			ID:        p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Type:      addOnType,
		})
	}
	return addOns, nil
}

func (g *HTTPGateway) getJSON(ctx context.Context, path string, out any) error {
	endpoint, err := url.JoinPath(g.baseURL, path)
	if err != nil {
		return infra.WrapRepoErr(infra.KindUnavailable, "invalid catalog endpoint", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return infra.WrapRepoErr(infra.KindUnavailable, "failed to build catalog request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return infra.WrapRepoErr(infra.KindUnavailable, "catalog request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return infra.NewRepoErr(infra.KindNotFound, "catalog entity not found")
	case resp.StatusCode != http.StatusOK:
		return infra.NewRepoErr(infra.KindUnavailable, fmt.Sprintf("catalog returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapRepoErr(infra.KindUnavailable, "failed to decode catalog response", err)
	}
	return nil
}
