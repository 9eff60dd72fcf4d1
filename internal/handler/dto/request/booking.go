package request

import (
	"time"

	"booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type GuestDetails struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type AddOnSelectionRequest struct {
	AddOnID  uuid.UUID `json:"add_on_id" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	ProductID   uuid.UUID               `json:"product_id" binding:"required"`
	ProductType string                  `json:"product_type" binding:"required,oneof=room event"`
	CheckIn     string                  `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut    *string                 `json:"check_out,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Quantity    int32                   `json:"quantity" binding:"required,min=1"`
	GuestCount  int32                   `json:"guest_count,omitempty" binding:"omitempty,min=1"`
	Guest       GuestDetails            `json:"guest" binding:"required"`
	AddOns      []AddOnSelectionRequest `json:"add_ons,omitempty" binding:"omitempty,dive"`
}

func (r CreateBookingRequest) ToParams() (commands.CreateBookingParams, error) {
	checkIn, err := time.Parse(time.DateOnly, r.CheckIn)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}
	var checkOut time.Time
	if r.CheckOut != nil {
		checkOut, err = time.Parse(time.DateOnly, *r.CheckOut)
		if err != nil {
			return commands.CreateBookingParams{}, err
		}
	}

	addOns := make([]commands.AddOnSelectionParams, len(r.AddOns))
	for i, sel := range r.AddOns {
		addOns[i] = commands.AddOnSelectionParams{
			AddOnID:  sel.AddOnID,
			Quantity: sel.Quantity,
		}
	}

	return commands.CreateBookingParams{
		ProductID:   r.ProductID,
		ProductType: r.ProductType,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Quantity:    r.Quantity,
		GuestCount:  r.GuestCount,
		GuestName:   r.Guest.Name,
		GuestEmail:  r.Guest.Email,
		GuestPhone:  r.Guest.Phone,
		AddOns:      addOns,
	}, nil
}
