package materializer

import (
	"context"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// BookingRepository is the storage surface the materializer needs
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// TransactionManager runs the whole expansion atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface the materializer needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
