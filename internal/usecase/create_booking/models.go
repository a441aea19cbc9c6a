package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// Request creates a booking directly, without going through checkout. Used by
// the admin panel for manually arranged sessions.
type Request struct {
	PatientID    uuid.UUID
	When         time.Time
	Type         domain.SessionType
	Value        *float64 // overrides the configured price when set
	Notes        *string
	Installments int
	Method       domain.PaymentMethod
}

// CreatedBooking is one materialized session
type CreatedBooking struct {
	ID           uuid.UUID `json:"id"`
	When         time.Time `json:"dataHora"`
	Status       string    `json:"status"`
	SessionIndex int       `json:"numeroSessao"`
	Value        float64   `json:"valor"`
}

// Response reports every session the request produced. Single bookings carry
// exactly one entry.
type Response struct {
	PrincipalID   uuid.UUID        `json:"agendamentoId"`
	TotalSessions int              `json:"totalSessoes"`
	TotalValue    float64          `json:"valorTotal"`
	Bookings      []CreatedBooking `json:"sessoes"`
}

// Pricing holds the configured session prices in BRL
type Pricing struct {
	Single         float64
	MonthlyPackage float64
	AnnualPackage  float64
}

// PriceFor resolves the full price of a booking of the given type
func (p Pricing) PriceFor(t domain.SessionType) float64 {
	switch t {
	case domain.SessionMonthlyPackage:
		return p.MonthlyPackage
	case domain.SessionAnnualPackage:
		return p.AnnualPackage
	default:
		return p.Single
	}
}
