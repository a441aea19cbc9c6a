package process_webhook

import (
	"context"

	processWebhook "github.com/psicoagenda/booking-service/internal/usecase/process_webhook"
)

// ProcessWebhookUseCase is the operation behind this handler
type ProcessWebhookUseCase interface {
	Execute(ctx context.Context, req *processWebhook.Request) (*processWebhook.Response, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
