package process_webhook

import (
	"context"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/internal/integrations/mailer"
	"github.com/psicoagenda/booking-service/internal/integrations/mercadopago"
	"github.com/psicoagenda/booking-service/internal/service/materializer"
)

// BookingRepository is the storage surface this use case needs. The partial
// unique index behind Create is the authoritative conflict check here.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// LeadRepository drives the lead state machine
type LeadRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	MarkConverted(ctx context.Context, id, bookingID uuid.UUID, paymentID string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error
	SetLastPayment(ctx context.Context, id uuid.UUID, paymentID string) error
}

// PatientRepository resolves or creates the patient behind a paying lead
type PatientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
}

// PaymentClient fetches the authoritative payment record. Webhook bodies only
// carry the payment id; status always comes from this call.
type PaymentClient interface {
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// MailerClient sends the booking confirmation. Failures are logged, never
// propagated.
type MailerClient interface {
	SendBookingConfirmation(ctx context.Context, req *mailer.ConfirmationRequest) error
}

// Materializer expands package purchases into concrete sessions
type Materializer interface {
	MaterializePackage(ctx context.Context, p materializer.Params) ([]*domain.Booking, error)
}

// TransactionManager makes booking creation and lead conversion atomic
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface this use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
