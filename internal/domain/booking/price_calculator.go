package booking

import (
	"time"

	"booking-engine/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

// DayPrice is one reserved day with its unit price from inventory.
type DayPrice struct {
	Date      time.Time
	UnitPrice decimal.Decimal
}

type PriceCalculator interface {
	Calculate(productType ProductType, days []DayPrice, quantity int32, addOns []AddOnSelection, nights, guestCount int32) decimal.Decimal
}

// StandardPriceCalculator prices a stay as the sum of per-day unit prices
// multiplied by quantity. Events have no per-day semantics and are priced
// once. All arithmetic stays in decimal; currency totals never touch binary
// floating point.
type StandardPriceCalculator struct{}

func NewStandardPriceCalculator() *StandardPriceCalculator {
	return &StandardPriceCalculator{}
}

func (c *StandardPriceCalculator) Calculate(
	productType ProductType,
	days []DayPrice,
	quantity int32,
	addOns []AddOnSelection,
	nights, guestCount int32,
) decimal.Decimal {
	qty := decimal.NewFromInt32(quantity)

	base := decimal.Zero
	if productType == ProductEvent {
		if len(days) > 0 {
			base = days[0].UnitPrice.Mul(qty)
		}
	} else {
		for _, day := range days {
			base = base.Add(day.UnitPrice.Mul(qty))
		}
	}

	if nights < 1 {
		nights = 1
	}
	if guestCount < 1 {
		guestCount = quantity
	}

	total := base
	for _, sel := range addOns {
		total = total.Add(addOnPrice(sel, nights, guestCount))
	}
	return total
}

func addOnPrice(sel AddOnSelection, nights, guestCount int32) decimal.Decimal {
	price := sel.UnitPrice.Mul(decimal.NewFromInt32(sel.Quantity))
	switch sel.Type {
	case catalog.AddOnPerNight:
		return price.Mul(decimal.NewFromInt32(nights))
	case catalog.AddOnPerPerson:
		return price.Mul(decimal.NewFromInt32(guestCount))
	default:
		// one_time and per_unit both charge once per selected quantity
		return price
	}
}
