package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/psicoagenda/booking-service/internal/api/handlers"
	"github.com/psicoagenda/booking-service/internal/domain"
	getAvailableSlots "github.com/psicoagenda/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate    = "data inválida, use o formato YYYY-MM-DD"
	msgInvalidType    = "tipo de sessão inválido"
	msgNonWorkingDay  = "não há atendimento neste dia"
	msgInvalidRequest = "parâmetros inválidos"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/available?data=YYYY-MM-DD&tipo=avulsa
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := time.ParseInLocation(domain.DateFormat, q.Get("data"), domain.LocalZone)
	if err != nil {
		h.logger.Warn("GET /slots/available - invalid date %q: %v", q.Get("data"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	sessionType := domain.SessionType(q.Get("tipo"))
	if sessionType == "" {
		sessionType = domain.SessionSingle
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date: date,
		Type: sessionType,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrNonWorkingDay):
			handlers.RespondJSON(w, http.StatusOK, emptyDayResponse(date, sessionType))
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots/available - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidType)
		default:
			h.logger.Error("GET /slots/available - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// emptyDayResponse keeps the response shape stable for non-working days: all
// candidate times present, none available.
func emptyDayResponse(date time.Time, t domain.SessionType) *getAvailableSlots.Response {
	resp := &getAvailableSlots.Response{
		Date:          date.Format(domain.DateFormat),
		SessionType:   string(t),
		TotalSessions: t.TotalSessions(),
	}
	for _, ct := range domain.CandidateTimes {
		resp.Slots = append(resp.Slots, getAvailableSlots.Slot{Time: ct, Available: false})
	}
	return resp
}
