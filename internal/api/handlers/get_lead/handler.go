package get_lead

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/service/leads"
)

const (
	msgInvalidID    = "identificador inválido"
	msgLeadNotFound = "lead não encontrado"
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

// Handle GET /api/v1/leads/{leadId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["leadId"])
	if err != nil {
		h.logger.Warn("GET /leads/{leadId} - invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, leads.ErrLeadNotFound) {
			h.logger.Warn("GET /leads/{leadId} - lead %s not found", id)
			handlers.RespondNotFound(w, msgLeadNotFound)
			return
		}
		h.logger.Error("GET /leads/{leadId} - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
