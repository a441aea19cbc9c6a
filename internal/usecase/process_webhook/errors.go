package process_webhook

import "errors"

var (
	ErrInvalidInput        = errors.New("process_webhook: invalid input")
	ErrLeadNotFound        = errors.New("process_webhook: lead not found")
	ErrProviderUnreachable = errors.New("process_webhook: payment provider unreachable")
	ErrSlotTaken           = errors.New("process_webhook: slot already taken")
	ErrInternal            = errors.New("process_webhook: internal error")
)
