package leads

import (
	"context"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// LeadRepository is the storage surface this service needs
type LeadRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Logger is the logging surface this service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
