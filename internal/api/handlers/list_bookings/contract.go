package list_bookings

import (
	"context"

	"github.com/psicoagenda/booking-service/internal/service/bookings/models"
)

// BookingsService is the service surface this handler needs
type BookingsService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
