package process_webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	processWebhook "github.com/psicoagenda/booking-service/internal/usecase/process_webhook"
)

// processTimeout bounds the background conversion, which outlives the request
const processTimeout = 30 * time.Second

type Handler struct {
	useCase ProcessWebhookUseCase
	logger  Logger
}

func NewHandler(useCase ProcessWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
//
// The provider only needs an acknowledgment; it retries on anything else.
// The notification is acked as soon as it parses and the conversion runs in
// the background, so a slow provider payment lookup never turns into a
// webhook timeout and a redelivery storm.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	topic, paymentID := parseNotification(r)
	if topic == "" && paymentID == "" {
		h.logger.Warn("POST /payments/webhook - unparseable notification")
		handlers.RespondBadRequest(w, "notificação inválida")
		return
	}

	h.logger.Info("POST /payments/webhook - received topic=%q payment=%q", topic, paymentID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()

		result, err := h.useCase.Execute(ctx, &processWebhook.Request{
			Topic:     topic,
			PaymentID: paymentID,
		})
		if err != nil {
			h.logger.Error("webhook payment=%s processing failed: %v", paymentID, err)
			return
		}
		h.logger.Info("webhook payment=%s outcome=%s", paymentID, result.Outcome)
	}()

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "recebido"})
}
