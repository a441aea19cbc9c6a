package get_month_availability

import "errors"

var (
	ErrInvalidInput = errors.New("get_month_availability: invalid input")
	ErrInternal     = errors.New("get_month_availability: internal error")
)
