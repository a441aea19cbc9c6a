package get_available_slots

import (
	"context"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// BookingRepository is the storage surface this use case needs
type BookingRepository interface {
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// Logger is the logging surface this use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
