package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/psicoagenda/booking-service/internal/usecase/get_available_slots"
)

// GetAvailableSlotsUseCase is the operation behind this handler
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
