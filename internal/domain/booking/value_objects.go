package booking

import (
	"errors"
	"strings"
	"time"

	"booking-engine/internal/domain/inventory"
)

var (
	ErrInvalidStayRange = errors.New("check-out must not be before check-in")
	ErrEmptyGuestName   = errors.New("guest name is required")
	ErrEmptyGuestEmail  = errors.New("guest email is required")
)

// StayRange is the date-only [checkIn, checkOut) span of a stay. A same-day
// range is a one-night stay occupying the check-in date.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := inventory.NormalizeDate(checkIn)
	out := inventory.NormalizeDate(checkOut)
	if checkOut.IsZero() {
		out = in
	}
	if out.Before(in) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func (s StayRange) CheckIn() time.Time  { return s.checkIn }
func (s StayRange) CheckOut() time.Time { return s.checkOut }

// Nights never reports zero: a same-day stay still charges one night.
func (s StayRange) Nights() int32 {
	nights := int32(s.checkOut.Sub(s.checkIn).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

// Days lists the inventory days the stay occupies. Events hold only the
// check-in date regardless of range.
func (s StayRange) Days(productType ProductType) []time.Time {
	if productType == ProductEvent || s.checkIn.Equal(s.checkOut) {
		return []time.Time{s.checkIn}
	}
	return inventory.DaysBetween(s.checkIn, s.checkOut)
}

type Guest struct {
	name  string
	email string
	phone string
}

func NewGuest(name, email, phone string) (Guest, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Guest{}, ErrEmptyGuestName
	}
	if email == "" {
		return Guest{}, ErrEmptyGuestEmail
	}
	return Guest{name: name, email: email, phone: strings.TrimSpace(phone)}, nil
}

func (g Guest) Name() string  { return g.name }
func (g Guest) Email() string { return g.email }
func (g Guest) Phone() string { return g.phone }
