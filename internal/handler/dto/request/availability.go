package request

import (
	"errors"
	"time"
)

type AvailabilityQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

var ErrMalformedDate = errors.New("dates must use the YYYY-MM-DD format")

func (q AvailabilityQuery) ParseRange() (from, to time.Time, err error) {
	from, err = time.Parse(time.DateOnly, q.From)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedDate
	}
	to, err = time.Parse(time.DateOnly, q.To)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedDate
	}
	return from, to, nil
}
