package queries

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/inventory"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type InventoryReader interface {
	GetRange(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]inventory.Entry, error)
}

// ProductReader is the read slice of the catalog gateway the availability
// view consumes. Enrichment only; a gateway failure never fails the request.
type ProductReader interface {
	Product(ctx context.Context, productID uuid.UUID) (*catalog.Product, error)
}

type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, productID uuid.UUID, from, to time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	reader   InventoryReader
	products ProductReader
}

func NewAvailabilityQueries(reader InventoryReader, products ProductReader) AvailabilityQueries {
	return &availabilityQueriesImpl{reader: reader, products: products}
}

// GetAvailability aggregates inventory rows into a per-day calendar over
// [from, to). Read-only and safe under arbitrary concurrency; the view may
// be stale by the time a booking runs — reservation re-validates.
func (q *availabilityQueriesImpl) GetAvailability(
	ctx context.Context,
	productID uuid.UUID,
	from, to time.Time,
) (*AvailabilityView, error) {
	if productID == uuid.Nil {
		return nil, errs.Mark(errs.New("product id is required"), errs.ErrInvalidRequest)
	}
	from = inventory.NormalizeDate(from)
	to = inventory.NormalizeDate(to)
	if !from.Before(to) {
		return nil, errs.Mark(errs.New("from must be before to"), errs.ErrInvalidRange)
	}

	entries, err := q.reader.GetRange(ctx, productID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read inventory range")
	}

	byDate := make(map[time.Time]inventory.Entry, len(entries))
	for _, e := range entries {
		byDate[e.Date()] = e
	}

	view := &AvailabilityView{
		ProductID: productID,
		From:      from.Format(time.DateOnly),
		To:        to.Format(time.DateOnly),
	}
	if product, productErr := q.products.Product(ctx, productID); productErr == nil {
		view.ProductName = product.Name
	} else {
		slog.Debug("catalog enrichment unavailable", "product_id", productID, "error", productErr)
	}
	for _, day := range inventory.DaysBetween(from, to) {
		entry, ok := byDate[day]
		if !ok {
			view.Days = append(view.Days, AvailabilityDay{
				Date:          day.Format(time.DateOnly),
				NotConfigured: true,
			})
			continue
		}

		if view.Currency == "" {
			view.Currency = entry.Currency()
		} else if entry.Currency() != view.Currency {
			// Data-integrity condition, surfaced as a warning rather
			// than a failed request
			slog.Warn("currency mismatch across inventory range",
				"product_id", productID,
				"date", day.Format(time.DateOnly),
				"expected", view.Currency,
				"got", entry.Currency())
		}

		price := entry.UnitPrice()
		view.Days = append(view.Days, AvailabilityDay{
			Date:           day.Format(time.DateOnly),
			Available:      entry.Bookable(),
			UnitsAvailable: entry.Remaining(),
			Price:          &price,
		})
	}
	return view, nil
}
