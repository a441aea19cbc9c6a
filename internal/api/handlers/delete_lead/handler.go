package delete_lead

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/service/leads"
)

const (
	msgInvalidID     = "identificador inválido"
	msgLeadNotFound  = "lead não encontrado"
	msgLeadConverted = "lead convertido não pode ser removido"
)

type Handler struct {
	service LeadsService
	logger  Logger
}

func NewHandler(service LeadsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/leads/{leadId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["leadId"])
	if err != nil {
		h.logger.Warn("DELETE /leads/{leadId} - invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Purge(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, leads.ErrLeadNotFound):
			h.logger.Warn("DELETE /leads/{leadId} - lead %s not found", id)
			handlers.RespondNotFound(w, msgLeadNotFound)

		case errors.Is(err, leads.ErrConverted):
			h.logger.Warn("DELETE /leads/{leadId} - lead %s already converted", id)
			handlers.RespondError(w, http.StatusConflict, msgLeadConverted)

		default:
			h.logger.Error("DELETE /leads/{leadId} - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondNoContent(w)
}
