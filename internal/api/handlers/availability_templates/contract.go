package availability_templates

import (
	"context"

	"github.com/psicoagenda/booking-service/internal/service/schedule/models"
)

// ScheduleService is the service surface this handler needs
type ScheduleService interface {
	List(ctx context.Context) (*models.TemplateListResponse, error)
	GetByWeekday(ctx context.Context, weekday int) (*models.TemplateResponse, error)
	Configure(ctx context.Context, req *models.ConfigureRequest) (*models.TemplateResponse, error)
	Deactivate(ctx context.Context, weekday int) error
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
