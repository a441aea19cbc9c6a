package get_lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/service/leads/models"
)

// LeadsService is the service surface this handler needs
type LeadsService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.LeadResponse, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
