package create_booking

import (
	"context"

	createBooking "github.com/psicoagenda/booking-service/internal/usecase/create_booking"
)

// CreateBookingUseCase is the operation behind this handler
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
