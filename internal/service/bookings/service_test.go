package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
	"github.com/psicoagenda/booking-service/internal/service/bookings/models"
)

type cancelCall struct {
	id          uuid.UUID
	reason      string
	cancelledBy string
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking

	lastFilter    *domain.BookingFilter
	listResult    []*domain.Booking
	statusUpdates map[uuid.UUID]domain.BookingStatus
	cancels       []cancelCall
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:      make(map[uuid.UUID]*domain.Booking),
		statusUpdates: make(map[uuid.UUID]domain.BookingStatus),
	}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	return f.listResult, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus) error {
	f.statusUpdates[id] = status
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID, reason, cancelledBy string) error {
	f.cancels = append(f.cancels, cancelCall{id, reason, cancelledBy})
	b := f.bookings[id]
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.Cancellation = domain.Cancellation{Cancelled: true, At: &now, Reason: &reason, CancelledBy: &cancelledBy}
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func seedBooking(repo *fakeBookingRepo, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		When:      time.Date(2026, time.February, 2, 19, 0, 0, 0, domain.LocalZone),
		Type:      domain.SessionSingle,
		Status:    status,
		Value:     150,
		Payment:   domain.Payment{Status: domain.PaymentPending, Method: domain.MethodPix},
	}
	repo.bookings[b.ID] = b
	return b
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seedBooking(repo, domain.StatusConfirmed)
	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	_, err = svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_StatusFilter(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, noopLogger{})

	status := "Confirmado"
	_, err := svc.List(context.Background(), &models.ListRequest{Status: &status})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	assert.False(t, repo.lastFilter.IncludeInactive)

	bad := "pago"
	_, err = svc.List(context.Background(), &models.ListRequest{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_CancelledFilterForcesInactive(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, noopLogger{})

	status := "cancelado"
	_, err := svc.List(context.Background(), &models.ListRequest{Status: &status})
	require.NoError(t, err)
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seedBooking(repo, domain.StatusConfirmed)
	svc := NewService(repo, noopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: b.ID,
		Status:    "realizado",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusCompleted, repo.statusUpdates[b.ID])
}

func TestUpdateStatus_CancelledGoesThroughCancel(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seedBooking(repo, domain.StatusConfirmed)
	svc := NewService(repo, noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: b.ID,
		Status:    "cancelado",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.statusUpdates)
}

func TestUpdateStatus_RefusesCancelledBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seedBooking(repo, domain.StatusCancelled)
	svc := NewService(repo, noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: b.ID,
		Status:    "confirmado",
	})
	require.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seedBooking(repo, domain.StatusConfirmed)
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Cancel(context.Background(), &models.CancelRequest{
		BookingID: b.ID,
		Reason:    "paciente remarcou",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.Len(t, repo.cancels, 1)
	assert.Equal(t, "paciente remarcou", repo.cancels[0].reason)
	assert.Equal(t, "admin", repo.cancels[0].cancelledBy)
}

func TestCancel_Validation(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seedBooking(repo, domain.StatusConfirmed)
	svc := NewService(repo, noopLogger{})

	_, err := svc.Cancel(context.Background(), &models.CancelRequest{BookingID: b.ID, Reason: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seedBooking(repo, domain.StatusCancelled)
	svc := NewService(repo, noopLogger{})

	_, err := svc.Cancel(context.Background(), &models.CancelRequest{BookingID: b.ID, Reason: "duplicado"})
	require.ErrorIs(t, err, ErrAlreadyCancelled)
}
