package confirm_payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// Request confirms a payment that happened outside the provider (pix shown at
// the session, cash, bank transfer).
type Request struct {
	BookingID     uuid.UUID
	Method        domain.PaymentMethod
	TransactionID *string
	Proof         *string // URL or note attached by the admin
}

// Response reports the resulting payment block. AlreadyPaid is true when the
// call changed nothing.
type Response struct {
	BookingID     uuid.UUID  `json:"agendamentoId"`
	Status        string     `json:"statusPagamento"`
	Method        string     `json:"metodoPagamento"`
	PaidAt        *time.Time `json:"dataPagamento,omitempty"`
	AlreadyPaid   bool       `json:"jaConfirmado"`
	BookingStatus string     `json:"statusAgendamento"`
}
