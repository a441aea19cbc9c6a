package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/domain"
	confirmPayment "github.com/psicoagenda/booking-service/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidInput       = "dados inválidos"
	msgBookingNotFound    = "agendamento não encontrado"
	msgCancelled          = "agendamento cancelado não pode receber pagamento"
)

// ConfirmPaymentRequest is the HTTP body of POST /payments/confirm-manual
type ConfirmPaymentRequest struct {
	BookingID     string  `json:"agendamentoId"`
	Method        string  `json:"metodoPagamento"`
	TransactionID *string `json:"transacaoId,omitempty"`
	Proof         *string `json:"comprovante,omitempty"`
}

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/confirm-manual
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/confirm-manual - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		h.logger.Warn("POST /payments/confirm-manual - invalid booking id %q", req.BookingID)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		BookingID:     bookingID,
		Method:        domain.PaymentMethod(req.Method),
		TransactionID: req.TransactionID,
		Proof:         req.Proof,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/confirm-manual - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/confirm-manual - booking %s not found", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrCancelled):
			h.logger.Warn("POST /payments/confirm-manual - booking %s is cancelled", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgCancelled)

		default:
			h.logger.Error("POST /payments/confirm-manual - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
