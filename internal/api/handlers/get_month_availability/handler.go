package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	getMonthAvailability "github.com/psicoagenda/booking-service/internal/usecase/get_month_availability"
)

const msgInvalidMonth = "ano ou mês inválido"

type Handler struct {
	useCase GetMonthAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/availability?ano=2026&mes=9
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, errY := strconv.Atoi(q.Get("ano"))
	month, errM := strconv.Atoi(q.Get("mes"))
	if errY != nil || errM != nil {
		h.logger.Warn("GET /calendar/availability - invalid query ano=%q mes=%q", q.Get("ano"), q.Get("mes"))
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getMonthAvailability.Request{
		Year:  year,
		Month: month,
	})
	if err != nil {
		if errors.Is(err, getMonthAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /calendar/availability - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		h.logger.Error("GET /calendar/availability - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
