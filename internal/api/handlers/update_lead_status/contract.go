package update_lead_status

import (
	"context"

	"github.com/psicoagenda/booking-service/internal/service/leads/models"
)

// LeadsService is the service surface this handler needs
type LeadsService interface {
	UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.LeadResponse, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
