package response

import (
	"time"

	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingAddOnResponse struct {
	AddOnID   uuid.UUID       `json:"addOnId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Type      string          `json:"type"`
	Quantity  int32           `json:"quantity"`
}

type BookingResponse struct {
	BookingID   uuid.UUID              `json:"bookingId"`
	Reference   string                 `json:"reference"`
	ProductID   uuid.UUID              `json:"productId"`
	ProductType string                 `json:"productType"`
	CheckIn     string                 `json:"checkIn"`
	CheckOut    string                 `json:"checkOut"`
	Quantity    int32                  `json:"quantity"`
	GuestCount  int32                  `json:"guestCount"`
	GuestName   string                 `json:"guestName"`
	GuestEmail  string                 `json:"guestEmail"`
	GuestPhone  string                 `json:"guestPhone,omitempty"`
	Status      string                 `json:"status"`
	TotalPrice  decimal.Decimal        `json:"totalPrice"`
	Currency    string                 `json:"currency"`
	AddOns      []BookingAddOnResponse `json:"addOns,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	addOns := make([]BookingAddOnResponse, len(rm.AddOns))
	for i, a := range rm.AddOns {
		addOns[i] = BookingAddOnResponse{
			AddOnID:   a.AddOnID,
			Name:      a.Name,
			UnitPrice: a.UnitPrice,
			Type:      a.Type,
			Quantity:  a.Quantity,
		}
	}
	return &BookingResponse{
		BookingID:   rm.ID,
		Reference:   rm.Reference,
		ProductID:   rm.ProductID,
		ProductType: rm.ProductType,
		CheckIn:     rm.CheckIn,
		CheckOut:    rm.CheckOut,
		Quantity:    rm.Quantity,
		GuestCount:  rm.GuestCount,
		GuestName:   rm.GuestName,
		GuestEmail:  rm.GuestEmail,
		GuestPhone:  rm.GuestPhone,
		Status:      rm.Status,
		TotalPrice:  rm.TotalPrice,
		Currency:    rm.Currency,
		AddOns:      addOns,
		CreatedAt:   rm.CreatedAt,
	}
}
