package initiate_checkout

import (
	"errors"
	"net/http"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	initiateCheckout "github.com/psicoagenda/booking-service/internal/usecase/initiate_checkout"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidInput       = "dados inválidos"
	msgSlotTaken          = "horário indisponível"
	msgProviderDown       = "não foi possível iniciar o pagamento, tente novamente em instantes"
)

type Handler struct {
	useCase InitiateCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase InitiateCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req InitiateCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /checkout - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, initiateCheckout.ErrInvalidInput):
			h.logger.Warn("POST /checkout - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, initiateCheckout.ErrSlotTaken):
			h.logger.Warn("POST /checkout - slot taken: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, initiateCheckout.ErrProviderUnreachable):
			h.logger.Error("POST /checkout - provider unreachable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderDown)

		default:
			h.logger.Error("POST /checkout - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
