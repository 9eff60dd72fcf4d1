package booking

import (
	"errors"
	"time"

	"booking-engine/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidProductType = errors.New("invalid product type")
	ErrNegativeTotal      = errors.New("total price cannot be negative")
	ErrNotConfirmed       = errors.New("booking is not confirmed")
)

// AddOnSelection is a priced add-on attached to a booking, captured with the
// unit price in effect when the booking was made.
type AddOnSelection struct {
	AddOnID   uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Type      catalog.AddOnType
	Quantity  int32
}

type Booking struct {
	id          uuid.UUID
	reference   string
	productID   uuid.UUID
	productType ProductType
	stay        StayRange
	quantity    int32
	guestCount  int32
	guest       Guest
	totalPrice  decimal.Decimal
	currency    string
	status      Status
	addOns      []AddOnSelection
	createdAt   time.Time
}

func NewBooking(
	reference string,
	productID uuid.UUID,
	productType ProductType,
	stay StayRange,
	quantity, guestCount int32,
	guest Guest,
	totalPrice decimal.Decimal,
	currency string,
	addOns []AddOnSelection,
	createdAt time.Time,
) (*Booking, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if !productType.IsValid() {
		return nil, ErrInvalidProductType
	}
	if totalPrice.IsNegative() {
		return nil, ErrNegativeTotal
	}
	if guestCount < 1 {
		guestCount = quantity
	}
	return &Booking{
		id:          uuid.New(),
		reference:   reference,
		productID:   productID,
		productType: productType,
		stay:        stay,
		quantity:    quantity,
		guestCount:  guestCount,
		guest:       guest,
		totalPrice:  totalPrice,
		currency:    currency,
		status:      StatusConfirmed,
		addOns:      addOns,
		createdAt:   createdAt,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	reference string,
	productID uuid.UUID,
	productType ProductType,
	stay StayRange,
	quantity, guestCount int32,
	guest Guest,
	totalPrice decimal.Decimal,
	currency string,
	status Status,
	addOns []AddOnSelection,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		reference:   reference,
		productID:   productID,
		productType: productType,
		stay:        stay,
		quantity:    quantity,
		guestCount:  guestCount,
		guest:       guest,
		totalPrice:  totalPrice,
		currency:    currency,
		status:      status,
		addOns:      addOns,
		createdAt:   createdAt,
	}
}

// Cancel transitions Confirmed → Cancelled. The caller is responsible for
// releasing the reserved capacity for every day of the stay.
func (b *Booking) Cancel() error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) Reference() string           { return b.reference }
func (b *Booking) ProductID() uuid.UUID        { return b.productID }
func (b *Booking) ProductType() ProductType    { return b.productType }
func (b *Booking) Stay() StayRange             { return b.stay }
func (b *Booking) Quantity() int32             { return b.quantity }
func (b *Booking) GuestCount() int32           { return b.guestCount }
func (b *Booking) Guest() Guest                { return b.guest }
func (b *Booking) TotalPrice() decimal.Decimal { return b.totalPrice }
func (b *Booking) Currency() string            { return b.currency }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) AddOns() []AddOnSelection    { return b.addOns }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
