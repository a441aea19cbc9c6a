package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/internal/service/materializer"
)

// BookingRepository is the storage surface this use case needs
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindActiveByWhen(ctx context.Context, when time.Time) (*domain.Booking, error)
}

// PatientRepository resolves the patient the booking belongs to
type PatientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
}

// Materializer expands package purchases into concrete sessions
type Materializer interface {
	MaterializePackage(ctx context.Context, p materializer.Params) ([]*domain.Booking, error)
}

// Logger is the logging surface this use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
