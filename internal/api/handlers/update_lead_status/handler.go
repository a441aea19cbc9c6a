package update_lead_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/service/leads"
	"github.com/psicoagenda/booking-service/internal/service/leads/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidID          = "identificador inválido"
	msgInvalidStatus      = "status inválido"
	msgLeadNotFound       = "lead não encontrado"
	msgLeadConverted      = "lead já convertido"
)

// UpdateStatusRequest is the HTTP body of PATCH /leads/{leadId}/status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

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

// Handle PATCH /api/v1/leads/{leadId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["leadId"])
	if err != nil {
		h.logger.Warn("PATCH /leads/{leadId}/status - invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /leads/{leadId}/status - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), &models.UpdateStatusRequest{
		LeadID: id,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrInvalidInput):
			h.logger.Warn("PATCH /leads/{leadId}/status - invalid status %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, leads.ErrLeadNotFound):
			h.logger.Warn("PATCH /leads/{leadId}/status - lead %s not found", id)
			handlers.RespondNotFound(w, msgLeadNotFound)

		case errors.Is(err, leads.ErrConverted):
			h.logger.Warn("PATCH /leads/{leadId}/status - lead %s already converted", id)
			handlers.RespondError(w, http.StatusConflict, msgLeadConverted)

		default:
			h.logger.Error("PATCH /leads/{leadId}/status - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
