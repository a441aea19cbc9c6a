package get_month_availability

import (
	"context"

	getMonthAvailability "github.com/psicoagenda/booking-service/internal/usecase/get_month_availability"
)

// GetMonthAvailabilityUseCase is the operation behind this handler
type GetMonthAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getMonthAvailability.Request) (*getMonthAvailability.Response, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
