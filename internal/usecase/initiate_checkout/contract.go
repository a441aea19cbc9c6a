package initiate_checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/internal/integrations/mercadopago"
)

// BookingRepository is used to reject checkouts for instants that are
// already occupied before involving the payment provider.
type BookingRepository interface {
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// LeadRepository persists the booking intent
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	SetCheckout(ctx context.Context, id uuid.UUID, preferenceID, initPoint string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error
}

// PatientRepository links returning patients to their lead
type PatientRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
}

// PaymentClient creates the provider checkout session
type PaymentClient interface {
	CreatePreference(ctx context.Context, req *mercadopago.PreferenceRequest) (*mercadopago.Preference, error)
}

// Logger is the logging surface this use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
