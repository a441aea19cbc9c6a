package list_leads

import (
	"context"

	"github.com/psicoagenda/booking-service/internal/service/leads/models"
)

// LeadsService is the service surface this handler needs
type LeadsService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.LeadListResponse, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
