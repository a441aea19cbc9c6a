package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/internal/service/bookings"
	"github.com/psicoagenda/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "parâmetros inválidos"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?dataInicio=&dataFim=&status=&pacienteId=&incluirCancelados=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /bookings - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListRequest, error) {
	q := r.URL.Query()
	req := &models.ListRequest{
		IncludeInactive: q.Get("incluirCancelados") == "true",
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
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("pacienteId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		req.PatientID = &id
	}
	return req, nil
}
