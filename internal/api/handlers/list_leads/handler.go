package list_leads

import (
	"errors"
	"net/http"
	"time"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/internal/service/leads"
	"github.com/psicoagenda/booking-service/internal/service/leads/models"
)

const msgInvalidQuery = "parâmetros inválidos"

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

// Handle GET /api/v1/leads?status=&email=&dataInicio=&dataFim=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /leads - invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, leads.ErrInvalidInput) {
			h.logger.Warn("GET /leads - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /leads - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListRequest, error) {
	q := r.URL.Query()
	req := &models.ListRequest{}

	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("email"); v != "" {
		req.Email = &v
	}
	if v := q.Get("dataInicio"); v != "" {
		t, err := time.ParseInLocation(domain.DateFormat, v, domain.LocalZone)
		if err != nil {
			return nil, err
		}
		req.StartDate = &t
	}
	if v := q.Get("dataFim"); v != "" {
		t, err := time.ParseInLocation(domain.DateFormat, v, domain.LocalZone)
		if err != nil {
			return nil, err
		}
		end := t.AddDate(0, 0, 1)
		req.EndDate = &end
	}
	return req, nil
}
