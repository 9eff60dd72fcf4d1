package queries

import (
	"time"

	"booking-engine/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)

// AvailabilityDay is the derived per-date view. NotConfigured days (no
// inventory row) are reported explicitly so callers can tell "sold out"
// apart from "not configured".
type AvailabilityDay struct {
	Date           string           `json:"date"`
	Available      bool             `json:"available"`
	NotConfigured  bool             `json:"not_configured"`
	UnitsAvailable int32            `json:"units_available"`
	Price          *decimal.Decimal `json:"price,omitempty"`
}

type AvailabilityView struct {
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name,omitempty"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Currency    string            `json:"currency"`
	Days        []AvailabilityDay `json:"days"`
}

type BookingAddOnView struct {
	AddOnID   uuid.UUID       `json:"add_on_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Type      string          `json:"type"`
	Quantity  int32           `json:"quantity"`
}

type BookingView struct {
	ID          uuid.UUID          `json:"id"`
	Reference   string             `json:"reference"`
	ProductID   uuid.UUID          `json:"product_id"`
	ProductType string             `json:"product_type"`
	CheckIn     string             `json:"check_in"`
	CheckOut    string             `json:"check_out"`
	Quantity    int32              `json:"quantity"`
	GuestCount  int32              `json:"guest_count"`
	GuestName   string             `json:"guest_name"`
	GuestEmail  string             `json:"guest_email"`
	GuestPhone  string             `json:"guest_phone,omitempty"`
	Status      string             `json:"status"`
	TotalPrice  decimal.Decimal    `json:"total_price"`
	Currency    string             `json:"currency"`
	AddOns      []BookingAddOnView `json:"add_ons,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	addOns := make([]BookingAddOnView, len(b.AddOns()))
	for i, sel := range b.AddOns() {
		addOns[i] = BookingAddOnView{
			AddOnID:   sel.AddOnID,
			Name:      sel.Name,
			UnitPrice: sel.UnitPrice,
			Type:      string(sel.Type),
			Quantity:  sel.Quantity,
		}
	}
	return &BookingView{
		ID:          b.ID(),
		Reference:   b.Reference(),
		ProductID:   b.ProductID(),
		ProductType: b.ProductType().String(),
		CheckIn:     b.Stay().CheckIn().Format(time.DateOnly),
		CheckOut:    b.Stay().CheckOut().Format(time.DateOnly),
		Quantity:    b.Quantity(),
		GuestCount:  b.GuestCount(),
		GuestName:   b.Guest().Name(),
		GuestEmail:  b.Guest().Email(),
		GuestPhone:  b.Guest().Phone(),
		Status:      b.Status().String(),
		TotalPrice:  b.TotalPrice(),
		Currency:    b.Currency(),
		AddOns:      addOns,
		CreatedAt:   b.CreatedAt(),
	}
}
