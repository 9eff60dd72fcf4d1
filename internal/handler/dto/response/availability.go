package response

import (
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AvailabilityDayResponse struct {
	Date           string           `json:"date"`
	Available      bool             `json:"available"`
	NotConfigured  bool             `json:"notConfigured"`
	UnitsAvailable int32            `json:"unitsAvailable"`
	Price          *decimal.Decimal `json:"price,omitempty"`
}

type AvailabilityResponse struct {
	ProductID   uuid.UUID                 `json:"productId"`
	ProductName string                    `json:"productName,omitempty"`
	From        string                    `json:"from"`
	To          string                    `json:"to"`
	Currency    string                    `json:"currency"`
	Days        []AvailabilityDayResponse `json:"days"`
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	days := make([]AvailabilityDayResponse, len(rm.Days))
	for i, d := range rm.Days {
		days[i] = AvailabilityDayResponse{
			Date:           d.Date,
			Available:      d.Available,
			NotConfigured:  d.NotConfigured,
			UnitsAvailable: d.UnitsAvailable,
			Price:          d.Price,
		}
	}
	return &AvailabilityResponse{
		ProductID:   rm.ProductID,
		ProductName: rm.ProductName,
		From:        rm.From,
		To:          rm.To,
		Currency:    rm.Currency,
		Days:        days,
	}
}
