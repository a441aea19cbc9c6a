package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	createBooking "github.com/psicoagenda/booking-service/internal/usecase/create_booking"
	"github.com/psicoagenda/booking-service/pkg/types"
)

// CreateBookingRequest is the HTTP body of POST /bookings
type CreateBookingRequest struct {
	PatientID    string   `json:"pacienteId"`
	Date         string   `json:"data"`    // YYYY-MM-DD
	Time         string   `json:"horario"` // HH:MM
	SessionType  string   `json:"tipoSessao"`
	Value        *float64 `json:"valor,omitempty"`
	Notes        *string  `json:"observacoes,omitempty"`
	Installments int      `json:"parcelas,omitempty"`
	Method       string   `json:"metodoPagamento,omitempty"`
}

// ToUseCaseRequest parses the wire representation into the use case request
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	patientID, err := uuid.Parse(r.PatientID)
	if err != nil {
		return nil, fmt.Errorf("parse patient id: %w", err)
	}

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

	return &createBooking.Request{
		PatientID:    patientID,
		When:         when,
		Type:         domain.SessionType(r.SessionType),
		Value:        r.Value,
		Notes:        r.Notes,
		Installments: r.Installments,
		Method:       domain.PaymentMethod(r.Method),
	}, nil
}
