package initiate_checkout

import "errors"

var (
	ErrInvalidInput        = errors.New("initiate_checkout: invalid input")
	ErrSlotTaken           = errors.New("initiate_checkout: slot already taken")
	ErrProviderUnreachable = errors.New("initiate_checkout: payment provider unreachable")
	ErrInternal            = errors.New("initiate_checkout: internal error")
)
