package queries

import (
	"context"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/errs"
)

type BookingReader interface {
	FindByReference(ctx context.Context, reference string) (*booking.Booking, error)
}

type BookingQueries interface {
	GetBooking(ctx context.Context, reference string) (*BookingView, error)
}

type bookingQueriesImpl struct {
	reader BookingReader
}

func NewBookingQueries(reader BookingReader) BookingQueries {
	return &bookingQueriesImpl{reader: reader}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, reference string) (*BookingView, error) {
	if reference == "" {
		return nil, errs.Mark(errs.New("booking reference is required"), errs.ErrInvalidRequest)
	}
	b, err := q.reader.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to read booking")
	}
	return NewBookingView(b), nil
}
