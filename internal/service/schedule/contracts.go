package schedule

import (
	"context"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// AvailabilityRepository is the storage surface this service needs
type AvailabilityRepository interface {
	Upsert(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetByWeekday(ctx context.Context, weekday time.Weekday) (*domain.AvailabilityTemplate, error)
	Exists(ctx context.Context, weekday time.Weekday) (bool, error)
	ListActive(ctx context.Context) ([]*domain.AvailabilityTemplate, error)
	Deactivate(ctx context.Context, weekday time.Weekday) error
}

// Logger is the logging surface this service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
