package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
	getAvailableSlots "github.com/psicoagenda/booking-service/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	req  *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestHandle_DefaultsToSingleSession(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Date: "2026-02-03"}}
	h := NewHandler(uc, noopLogger{})

	r := httptest.NewRequest("GET", "/api/v1/slots/available?data=2026-02-03", nil)
	w := httptest.NewRecorder()
	h.Handle(w, r)

	assert.Equal(t, 200, w.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, domain.SessionSingle, uc.req.Type)
	assert.Equal(t, "2026-02-03", uc.req.Date.Format(domain.DateFormat))
}

func TestHandle_TipoParamSelectsPackage(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Date: "2026-02-03"}}
	h := NewHandler(uc, noopLogger{})

	r := httptest.NewRequest("GET", "/api/v1/slots/available?data=2026-02-03&tipo=pacote_mensal", nil)
	w := httptest.NewRecorder()
	h.Handle(w, r)

	assert.Equal(t, 200, w.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, domain.SessionMonthlyPackage, uc.req.Type)
}

func TestHandle_InvalidDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, noopLogger{})

	r := httptest.NewRequest("GET", "/api/v1/slots/available?data=03-02-2026", nil)
	w := httptest.NewRecorder()
	h.Handle(w, r)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestHandle_NonWorkingDayIs200AllUnavailable(t *testing.T) {
	uc := &fakeUseCase{err: getAvailableSlots.ErrNonWorkingDay}
	h := NewHandler(uc, noopLogger{})

	r := httptest.NewRequest("GET", "/api/v1/slots/available?data=2026-02-07&tipo=avulsa", nil)
	w := httptest.NewRecorder()
	h.Handle(w, r)

	require.Equal(t, 200, w.Code)

	var resp getAvailableSlots.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-02-07", resp.Date)
	require.Len(t, resp.Slots, 3)
	for _, s := range resp.Slots {
		assert.False(t, s.Available)
	}
	assert.Empty(t, resp.Available)
}

func TestHandle_InvalidType(t *testing.T) {
	uc := &fakeUseCase{err: getAvailableSlots.ErrInvalidInput}
	h := NewHandler(uc, noopLogger{})

	r := httptest.NewRequest("GET", "/api/v1/slots/available?data=2026-02-03&tipo=quinzenal", nil)
	w := httptest.NewRecorder()
	h.Handle(w, r)

	assert.Equal(t, 400, w.Code)
}
