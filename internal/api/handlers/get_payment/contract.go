package get_payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/service/bookings/models"
)

// BookingsService is the service surface this handler needs
type BookingsService interface {
	GetPayment(ctx context.Context, id uuid.UUID) (*models.PaymentResponse, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
