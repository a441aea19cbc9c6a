package availability_templates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/service/schedule"
	"github.com/psicoagenda/booking-service/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidWeekday     = "dia da semana inválido"
	msgInvalidInput       = "dados inválidos"
	msgTemplateNotFound   = "disponibilidade não encontrada"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/availability
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /availability - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/availability/{weekday}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("GET /availability/{weekday} - invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	result, err := h.service.GetByWeekday(r.Context(), weekday)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrTemplateNotFound):
			handlers.RespondNotFound(w, msgTemplateNotFound)

		default:
			h.logger.Error("GET /availability/{weekday} - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleConfigure PUT /api/v1/availability/{weekday}
func (h *Handler) HandleConfigure(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("PUT /availability/{weekday} - invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req models.ConfigureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{weekday} - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Weekday = weekday

	result, err := h.service.Configure(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /availability/{weekday} - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("PUT /availability/{weekday} - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeactivate DELETE /api/v1/availability/{weekday}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("DELETE /availability/{weekday} - invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	if err := h.service.Deactivate(r.Context(), weekday); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /availability/{weekday} - invalid weekday %d", weekday)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.logger.Warn("DELETE /availability/{weekday} - no template for weekday %d", weekday)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		default:
			h.logger.Error("DELETE /availability/{weekday} - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondNoContent(w)
}
