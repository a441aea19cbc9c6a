package initiate_checkout

import (
	"fmt"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
	initiateCheckout "github.com/psicoagenda/booking-service/internal/usecase/initiate_checkout"
	"github.com/psicoagenda/booking-service/pkg/types"
)

// AddressRequest mirrors the address fields of the public form
type AddressRequest struct {
	Street       string `json:"rua,omitempty"`
	Number       string `json:"numero,omitempty"`
	Neighborhood string `json:"bairro,omitempty"`
	City         string `json:"cidade,omitempty"`
	State        string `json:"estado,omitempty"`
	PostalCode   string `json:"cep,omitempty"`
}

// InitiateCheckoutRequest is the HTTP body of POST /checkout
type InitiateCheckoutRequest struct {
	Name      string         `json:"nome"`
	Email     string         `json:"email"`
	Phone     string         `json:"telefone"`
	CPF       *string        `json:"cpf,omitempty"`
	BirthDate *string        `json:"dataNascimento,omitempty"` // YYYY-MM-DD
	Address   AddressRequest `json:"endereco,omitempty"`

	SessionType  string  `json:"tipoSessao"`
	Date         string  `json:"data"`    // YYYY-MM-DD
	Time         string  `json:"horario"` // HH:MM
	Installments int     `json:"parcelas,omitempty"`
	Notes        *string `json:"observacoes,omitempty"`
	Origin       string  `json:"origem,omitempty"`
}

// ToUseCaseRequest parses the wire representation into the use case request
func (r *InitiateCheckoutRequest) ToUseCaseRequest() (*initiateCheckout.Request, error) {
	day, err := time.ParseInLocation(domain.DateFormat, r.Date, domain.LocalZone)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	ts, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("parse time: %w", err)
	}
	when, err := ts.At(day, domain.LocalZone)
	if err != nil {
		return nil, fmt.Errorf("parse time: %w", err)
	}

	var birthDate *time.Time
	if r.BirthDate != nil && *r.BirthDate != "" {
		bd, err := time.ParseInLocation(domain.DateFormat, *r.BirthDate, domain.LocalZone)
		if err != nil {
			return nil, fmt.Errorf("parse birth date: %w", err)
		}
		birthDate = &bd
	}

	return &initiateCheckout.Request{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		CPF:       r.CPF,
		BirthDate: birthDate,
		Address: domain.Address{
			Street:       r.Address.Street,
			Number:       r.Address.Number,
			Neighborhood: r.Address.Neighborhood,
			City:         r.Address.City,
			State:        r.Address.State,
			PostalCode:   r.Address.PostalCode,
		},
		SessionType:  domain.SessionType(r.SessionType),
		When:         when,
		Installments: r.Installments,
		Notes:        r.Notes,
		Origin:       r.Origin,
	}, nil
}
