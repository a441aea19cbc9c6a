package delete_lead

import (
	"context"

	"github.com/google/uuid"
)

// LeadsService is the service surface this handler needs
type LeadsService interface {
	Purge(ctx context.Context, id uuid.UUID) error
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
