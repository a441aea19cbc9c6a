package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// ListRequest narrows the admin booking listing
type ListRequest struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	PatientID       *uuid.UUID
	IncludeInactive bool
}

// UpdateStatusRequest moves a booking to a new status
type UpdateStatusRequest struct {
	BookingID uuid.UUID
	Status    string
}

// CancelRequest cancels a booking, freeing its slot
type CancelRequest struct {
	BookingID   uuid.UUID
	Reason      string
	CancelledBy string
}

// PackageResponse mirrors domain.PackageInfo on the wire
type PackageResponse struct {
	IsPackage     bool       `json:"ehPacote"`
	PackageType   string     `json:"tipoPacote,omitempty"`
	TotalSessions int        `json:"totalSessoes,omitempty"`
	SessionIndex  int        `json:"numeroSessao,omitempty"`
	PrincipalID   *uuid.UUID `json:"agendamentoPrincipalId,omitempty"`
	FixedWeekday  int        `json:"diaSemanaFixo,omitempty"`
	FixedTime     string     `json:"horarioFixo,omitempty"`
}

// PaymentResponse mirrors the payment block on the wire
type PaymentResponse struct {
	Status        string     `json:"status"`
	Method        string     `json:"metodo,omitempty"`
	TransactionID *string    `json:"transacaoId,omitempty"`
	PreferenceID  *string    `json:"preferenciaId,omitempty"`
	PaidAt        *time.Time `json:"dataPagamento,omitempty"`
	Proof         *string    `json:"comprovante,omitempty"`
}

// CancellationResponse mirrors the cancellation block on the wire
type CancellationResponse struct {
	At          *time.Time `json:"data,omitempty"`
	Reason      *string    `json:"motivo,omitempty"`
	CancelledBy *string    `json:"canceladoPor,omitempty"`
}

// BookingResponse is the full booking representation returned by the API
type BookingResponse struct {
	ID        uuid.UUID  `json:"id"`
	PatientID uuid.UUID  `json:"pacienteId"`
	LeadID    *uuid.UUID `json:"leadId,omitempty"`
	When      time.Time  `json:"dataHora"`
	Duration  int        `json:"duracaoMinutos"`
	Type      string     `json:"tipoSessao"`
	Status    string     `json:"status"`
	Value     float64    `json:"valor"`
	Notes     *string    `json:"observacoes,omitempty"`

	Package      *PackageResponse      `json:"pacote,omitempty"`
	Payment      PaymentResponse       `json:"pagamento"`
	Installments int                   `json:"parcelas"`
	PerAmount    float64               `json:"valorParcela"`
	Cancellation *CancellationResponse `json:"cancelamento,omitempty"`

	CreatedAt time.Time `json:"criadoEm"`
	UpdatedAt time.Time `json:"atualizadoEm"`
}

// BookingListResponse wraps a listing with its count
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"agendamentos"`
	Total    int                `json:"total"`
}

// FromDomainBooking converts a domain booking to its API representation
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:        b.ID,
		PatientID: b.PatientID,
		LeadID:    b.LeadID,
		When:      b.When,
		Duration:  b.Duration,
		Type:      string(b.Type),
		Status:    string(b.Status),
		Value:     b.Value,
		Notes:     b.Notes,
		Payment: PaymentResponse{
			Status:        string(b.Payment.Status),
			Method:        string(b.Payment.Method),
			TransactionID: b.Payment.TransactionID,
			PreferenceID:  b.Payment.PreferenceID,
			PaidAt:        b.Payment.PaidAt,
			Proof:         b.Payment.Proof,
		},
		Installments: b.Installments.Count,
		PerAmount:    b.Installments.PerAmount,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.Package.IsPackage {
		resp.Package = &PackageResponse{
			IsPackage:     true,
			PackageType:   string(b.Package.PackageType),
			TotalSessions: b.Package.TotalSessions,
			SessionIndex:  b.Package.SessionIndex,
			PrincipalID:   b.Package.PrincipalID,
			FixedWeekday:  int(b.Package.FixedWeekday),
			FixedTime:     b.Package.FixedTime,
		}
	}
	if b.Cancellation.Cancelled {
		resp.Cancellation = &CancellationResponse{
			At:          b.Cancellation.At,
			Reason:      b.Cancellation.Reason,
			CancelledBy: b.Cancellation.CancelledBy,
		}
	}
	return resp
}

// FromDomainBookings converts a slice of domain bookings
func FromDomainBookings(bs []*domain.Booking) *BookingListResponse {
	out := make([]*BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out, Total: len(out)}
}
