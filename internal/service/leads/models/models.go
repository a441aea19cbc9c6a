package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// ListRequest narrows the administrative lead listing
type ListRequest struct {
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
	Email     *string
}

// UpdateStatusRequest moves a lead to a new status
type UpdateStatusRequest struct {
	LeadID uuid.UUID
	Status string
}

// LeadResponse is the API representation of a lead
type LeadResponse struct {
	ID        uuid.UUID  `json:"id"`
	PatientID *uuid.UUID `json:"pacienteId,omitempty"`

	Name      string     `json:"nome"`
	Email     string     `json:"email"`
	Phone     string     `json:"telefone"`
	CPF       *string    `json:"cpf,omitempty"`
	BirthDate *time.Time `json:"dataNascimento,omitempty"`

	SessionType  string    `json:"tipoSessao"`
	When         time.Time `json:"dataHora"`
	Value        float64   `json:"valor"`
	Notes        *string   `json:"observacoes,omitempty"`
	Installments int       `json:"parcelas"`

	Status    string     `json:"status"`
	BookingID *uuid.UUID `json:"agendamentoId,omitempty"`

	PreferenceID  *string `json:"preferenciaId,omitempty"`
	InitPoint     *string `json:"linkPagamento,omitempty"`
	LastPaymentID *string `json:"ultimoPagamentoId,omitempty"`

	Origin string `json:"origem,omitempty"`

	CreatedAt time.Time `json:"criadoEm"`
	UpdatedAt time.Time `json:"atualizadoEm"`
}

// LeadListResponse wraps a listing with its count
type LeadListResponse struct {
	Leads []*LeadResponse `json:"leads"`
	Total int             `json:"total"`
}

// FromDomainLead converts a domain lead to its API representation
func FromDomainLead(l *domain.Lead) *LeadResponse {
	return &LeadResponse{
		ID:            l.ID,
		PatientID:     l.PatientID,
		Name:          l.Name,
		Email:         l.Email,
		Phone:         l.Phone,
		CPF:           l.CPF,
		BirthDate:     l.BirthDate,
		SessionType:   string(l.SessionType),
		When:          l.When,
		Value:         l.Value,
		Notes:         l.Notes,
		Installments:  l.Installments.Count,
		Status:        string(l.Status),
		BookingID:     l.BookingID,
		PreferenceID:  l.PreferenceID,
		InitPoint:     l.InitPoint,
		LastPaymentID: l.LastPaymentID,
		Origin:        l.Origin,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// FromDomainLeads converts a slice of domain leads
func FromDomainLeads(ls []*domain.Lead) *LeadListResponse {
	out := make([]*LeadResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, FromDomainLead(l))
	}
	return &LeadListResponse{Leads: out, Total: len(out)}
}
