package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Request validation errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidRange   = errors.New("invalid date range")

	// Inventory errors
	ErrNotConfigured       = errors.New("no inventory configured for date")
	ErrCapacityUnavailable = errors.New("insufficient capacity")
	ErrReservationRaceLost = errors.New("lost concurrent reservation race")

	// Booking errors
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingNotCancelable = errors.New("booking cannot be cancelled")
	ErrDuplicateReference   = errors.New("duplicate booking reference")

	// Catalog errors
	ErrProductNotFound = errors.New("product not found")

	// Operation errors
	ErrPersistenceFailed = errors.New("persistence failed")
)
