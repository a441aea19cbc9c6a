package create_booking

import "errors"

var (
	ErrInvalidInput    = errors.New("create_booking: invalid input")
	ErrPatientNotFound = errors.New("create_booking: patient not found")
	ErrSlotTaken       = errors.New("create_booking: slot already taken")
	ErrInternal        = errors.New("create_booking: internal error")
)
