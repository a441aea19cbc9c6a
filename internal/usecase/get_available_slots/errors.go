package get_available_slots

import "errors"

var (
	ErrInvalidInput  = errors.New("get_available_slots: invalid input")
	ErrNonWorkingDay = errors.New("get_available_slots: non-working day")
	ErrInternal      = errors.New("get_available_slots: internal error")
)
