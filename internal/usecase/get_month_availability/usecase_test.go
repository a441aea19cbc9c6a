package get_month_availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
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

func instant(day int, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, domain.LocalZone)
}

func TestExecute_MonthRollup(t *testing.T) {
	repo := &fakeBookingRepo{occupied: []time.Time{
		// March 2nd 2026 is a Monday, fully booked
		instant(2, 18, 0),
		instant(2, 19, 0),
		instant(2, 20, 30),
		// March 3rd partially booked
		instant(3, 19, 0),
		// Not a candidate time, must not count
		instant(4, 14, 0),
	}}
	uc := NewUseCase(repo, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 3, resp.Month)
	assert.Len(t, resp.Days, 31)

	full := resp.Days["2026-03-02"]
	assert.Equal(t, string(domain.DayNone), full.Status)
	assert.Equal(t, 3, full.Occupied)
	assert.Equal(t, 0, full.Free)

	partial := resp.Days["2026-03-03"]
	assert.Equal(t, string(domain.DayPartial), partial.Status)
	assert.Equal(t, 1, partial.Occupied)
	assert.Equal(t, 2, partial.Free)

	offCandidate := resp.Days["2026-03-04"]
	assert.Equal(t, string(domain.DayFree), offCandidate.Status)
	assert.Equal(t, 0, offCandidate.Occupied)
	assert.Equal(t, 3, offCandidate.Free)

	empty := resp.Days["2026-03-05"]
	assert.Equal(t, string(domain.DayFree), empty.Status)
	assert.Equal(t, 3, empty.Free)
}

func TestExecute_WeekendsNeverOffered(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 3})
	require.NoError(t, err)

	// March 7th/8th 2026 are Saturday and Sunday
	for _, key := range []string{"2026-03-07", "2026-03-08"} {
		entry := resp.Days[key]
		assert.Equal(t, string(domain.DayNone), entry.Status, key)
		assert.Equal(t, 0, entry.Free, key)
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Year: 1999, Month: 3})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Year: 2026, Month: 13})
	require.ErrorIs(t, err, ErrInvalidInput)
}
