package cancel_booking

import (
	"context"

	"github.com/psicoagenda/booking-service/internal/service/bookings/models"
)

// BookingsService is the service surface this handler needs
type BookingsService interface {
	Cancel(ctx context.Context, req *models.CancelRequest) (*models.BookingResponse, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
