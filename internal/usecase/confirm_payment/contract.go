package confirm_payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/internal/integrations/mailer"
)

// BookingRepository is the storage surface this use case needs
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ConfirmPayment(ctx context.Context, id uuid.UUID, method domain.PaymentMethod, transactionID *string, paidAt time.Time, proof *string) error
}

// PatientRepository resolves the recipient of the confirmation email
type PatientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
}

// MailerClient sends the booking confirmation. Failures are logged, never
// propagated.
type MailerClient interface {
	SendBookingConfirmation(ctx context.Context, req *mailer.ConfirmationRequest) error
}

// TimeProvider abstracts the clock
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

// Logger is the logging surface this use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
