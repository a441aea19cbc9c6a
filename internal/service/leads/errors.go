package leads

import "errors"

var (
	ErrInvalidInput = errors.New("leads: invalid input")
	ErrLeadNotFound = errors.New("leads: lead not found")
	ErrConverted    = errors.New("leads: lead already converted")
	ErrInternal     = errors.New("leads: internal error")
)
