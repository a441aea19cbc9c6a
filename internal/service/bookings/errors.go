package bookings

import "errors"

var (
	ErrInvalidInput     = errors.New("bookings: invalid input")
	ErrBookingNotFound  = errors.New("bookings: booking not found")
	ErrAlreadyCancelled = errors.New("bookings: booking already cancelled")
	ErrInternal         = errors.New("bookings: internal error")
)
