package materializer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
)

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	occupied []time.Time
	created  []*domain.Booking

	failAtCall int // 1-based Create call that fails, 0 disables
	failErr    error
	calls      int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.calls++
	if f.failAtCall > 0 && f.calls == f.failAtCall {
		return nil, f.failErr
	}
	stored := *b
	stored.ID = uuid.New()
	f.created = append(f.created, &stored)
	return &stored, nil
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

func mustInstant(t *testing.T, value string) time.Time {
	t.Helper()
	when, err := time.ParseInLocation(domain.DateTimeFormat, value, domain.LocalZone)
	require.NoError(t, err)
	return when
}

func monthlyParams(first time.Time) Params {
	return Params{
		PatientID:       uuid.New(),
		FirstWhen:       first,
		Type:            domain.SessionMonthlyPackage,
		TotalValue:      480,
		Installments:    1,
		PrincipalStatus: domain.StatusPending,
		Payment:         domain.Payment{Status: domain.PaymentPending, Method: domain.MethodPix},
	}
}

func TestMaterializePackage_Monthly(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := New(repo, &fakeTxManager{}, noopLogger{})

	first := mustInstant(t, "05/01/2026 19:00")
	p := monthlyParams(first)

	created, err := svc.MaterializePackage(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, created, 4)

	principal := created[0]
	assert.Equal(t, first, principal.When)
	assert.Equal(t, domain.StatusPending, principal.Status)
	assert.Equal(t, 480.0, principal.Value)
	assert.True(t, principal.Package.IsPackage)
	assert.Equal(t, domain.PackageMonthly, principal.Package.PackageType)
	assert.Equal(t, 4, principal.Package.TotalSessions)
	assert.Equal(t, 1, principal.Package.SessionIndex)
	assert.Nil(t, principal.Package.PrincipalID)
	assert.Equal(t, time.Monday, principal.Package.FixedWeekday)
	assert.Equal(t, "19:00", principal.Package.FixedTime)
	assert.Equal(t, 1, principal.Installments.Count)
	assert.Equal(t, 480.0, principal.Installments.PerAmount)

	for i, b := range created[1:] {
		index := i + 2
		assert.Equal(t, first.AddDate(0, 0, 7*(index-1)), b.When)
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		assert.Equal(t, 0.0, b.Value)
		assert.Equal(t, index, b.Package.SessionIndex)
		require.NotNil(t, b.Package.PrincipalID)
		assert.Equal(t, principal.ID, *b.Package.PrincipalID)
		require.NotNil(t, b.Notes)
		assert.Contains(t, *b.Notes, "Pacote mensal")
		assert.Equal(t, domain.PaymentPending, b.Payment.Status)
	}
}

func TestMaterializePackage_AnnualSeries(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := New(repo, &fakeTxManager{}, noopLogger{})

	first := mustInstant(t, "07/01/2026 20:30")
	p := monthlyParams(first)
	p.Type = domain.SessionAnnualPackage
	p.TotalValue = 5760
	p.Installments = 12

	created, err := svc.MaterializePackage(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, created, 48)

	assert.Equal(t, first.AddDate(0, 0, 7*47), created[47].When)
	assert.Equal(t, 48, created[47].Package.TotalSessions)
	assert.Equal(t, 12, created[0].Installments.Count)
	assert.Equal(t, 480.0, created[0].Installments.PerAmount)
	for _, b := range created {
		assert.Equal(t, "20:30", b.Package.FixedTime)
		assert.Equal(t, time.Wednesday, b.Package.FixedWeekday)
	}
}

func TestMaterializePackage_PreflightConflictAbortsAll(t *testing.T) {
	first := mustInstant(t, "05/01/2026 18:00")
	taken := first.AddDate(0, 0, 14) // third session of the series

	repo := &fakeBookingRepo{occupied: []time.Time{taken}}
	svc := New(repo, &fakeTxManager{}, noopLogger{})

	created, err := svc.MaterializePackage(context.Background(), monthlyParams(first))
	require.Error(t, err)
	assert.Nil(t, created)
	assert.Empty(t, repo.created)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, taken, conflict.When)
	assert.ErrorIs(t, err, ErrSchedulingConflict)
	assert.Contains(t, err.Error(), "19/01/2026 18:00")
}

func TestMaterializePackage_CreateRaceMapsToConflict(t *testing.T) {
	first := mustInstant(t, "06/01/2026 19:00")

	repo := &fakeBookingRepo{failAtCall: 2, failErr: bookingRepo.ErrSlotTaken}
	svc := New(repo, &fakeTxManager{}, noopLogger{})

	created, err := svc.MaterializePackage(context.Background(), monthlyParams(first))
	require.Error(t, err)
	assert.Nil(t, created)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.AddDate(0, 0, 7), conflict.When)
}

func TestMaterializePackage_RejectsSingleType(t *testing.T) {
	svc := New(&fakeBookingRepo{}, &fakeTxManager{}, noopLogger{})

	p := monthlyParams(mustInstant(t, "05/01/2026 19:00"))
	p.Type = domain.SessionSingle

	_, err := svc.MaterializePackage(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}
