package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// BookingRepository is the storage surface this service needs
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason, cancelledBy string) error
}

// Logger is the logging surface this service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
