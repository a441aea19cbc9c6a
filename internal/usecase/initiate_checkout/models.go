package initiate_checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/internal/usecase/create_booking"
)

// Request is the public booking form plus the chosen slot. Patient fields are
// snapshotted onto the lead exactly as submitted.
type Request struct {
	Name      string
	Email     string
	Phone     string
	CPF       *string
	BirthDate *time.Time
	Address   domain.Address

	SessionType  domain.SessionType
	When         time.Time // first session instant
	Installments int
	Notes        *string
	Origin       string
}

// Response carries what the client needs to redirect to the provider
type Response struct {
	LeadID           uuid.UUID `json:"leadId"`
	PreferenceID     string    `json:"preferenceId"`
	InitPoint        string    `json:"initPoint"`
	SandboxInitPoint string    `json:"sandboxInitPoint,omitempty"`
	Value            float64   `json:"valor"`
	TotalSessions    int       `json:"totalSessoes"`
}

// Pricing is reused from direct creation so both paths price identically
type Pricing = create_booking.Pricing

// CheckoutURLs are the provider return targets
type CheckoutURLs struct {
	NotificationURL string
	SuccessURL      string
	PendingURL      string
	FailureURL      string
}
