package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	occupied []time.Time
}

func (f *fakeBookingRepo) ListActiveBetween(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, when := range f.occupied {
		if !when.Before(from) && when.Before(to) {
			out = append(out, &domain.Booking{ID: uuid.New(), When: when, Status: domain.StatusConfirmed})
		}
	}
	return out, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func localDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, domain.LocalZone)
}

func at(day time.Time, hhmm types.TimeString) time.Time {
	when, _ := hhmm.At(day, domain.LocalZone)
	return when
}

func availableTimes(resp *Response) []types.TimeString {
	return resp.Available
}

func TestExecute_SingleDayAllFree(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: localDay(2026, time.January, 5), // Monday
		Type: domain.SessionSingle,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-05", resp.Date)
	assert.Equal(t, 1, resp.TotalSessions)
	require.Len(t, resp.Slots, 3)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.Time)
	}
	assert.Equal(t, []types.TimeString{"18:00", "19:00", "20:30"}, availableTimes(resp))
}

func TestExecute_SingleDayOneTaken(t *testing.T) {
	day := localDay(2026, time.January, 5)
	repo := &fakeBookingRepo{occupied: []time.Time{at(day, "19:00")}}
	uc := NewUseCase(repo, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: day, Type: domain.SessionSingle})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"18:00", "20:30"}, availableTimes(resp))
	for _, s := range resp.Slots {
		if s.Time == "19:00" {
			assert.False(t, s.Available)
		}
	}
}

// A package time is offered only when every weekly occurrence is free. One
// booking three weeks out blocks the candidate for the monthly package but not
// for a single session.
func TestExecute_PackageChecksWholeSeries(t *testing.T) {
	day := localDay(2026, time.January, 5)
	blocking := at(day.AddDate(0, 0, 21), "19:00")
	repo := &fakeBookingRepo{occupied: []time.Time{blocking}}

	uc := NewUseCase(repo, noopLogger{})

	pkg, err := uc.Execute(context.Background(), &Request{Date: day, Type: domain.SessionMonthlyPackage})
	require.NoError(t, err)
	assert.Equal(t, 4, pkg.TotalSessions)
	assert.Equal(t, []types.TimeString{"18:00", "20:30"}, availableTimes(pkg))

	single, err := uc.Execute(context.Background(), &Request{Date: day, Type: domain.SessionSingle})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"18:00", "19:00", "20:30"}, availableTimes(single))
}

func TestExecute_AnnualSeriesBlockedFarOut(t *testing.T) {
	day := localDay(2026, time.January, 7)
	blocking := at(day.AddDate(0, 0, 7*40), "18:00")
	uc := NewUseCase(&fakeBookingRepo{occupied: []time.Time{blocking}}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: day, Type: domain.SessionAnnualPackage})
	require.NoError(t, err)
	assert.Equal(t, 48, resp.TotalSessions)
	assert.Equal(t, []types.TimeString{"19:00", "20:30"}, availableTimes(resp))
}

func TestExecute_NonWorkingDay(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Date: localDay(2026, time.January, 10), // Saturday
		Type: domain.SessionSingle,
	})
	require.ErrorIs(t, err, ErrNonWorkingDay)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Type: domain.SessionSingle})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: localDay(2026, time.January, 5), Type: "quinzenal"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
