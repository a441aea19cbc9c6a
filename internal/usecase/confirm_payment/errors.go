package confirm_payment

import "errors"

var (
	ErrInvalidInput    = errors.New("confirm_payment: invalid input")
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")
	ErrCancelled       = errors.New("confirm_payment: booking is cancelled")
	ErrInternal        = errors.New("confirm_payment: internal error")
)
