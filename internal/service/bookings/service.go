package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
	"github.com/psicoagenda/booking-service/internal/service/bookings/models"
)

// Service covers the administrative booking operations: reading, listing,
// status transitions and cancellation.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID fetches one booking
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetPayment fetches the payment block of one booking
func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*models.PaymentResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetPayment")
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainBooking(booking).Payment
	return &resp, nil
}

// List returns bookings matching the filter, newest first
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingFilter{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PatientID:       req.PatientID,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Status != nil {
		status := domain.BookingStatus(strings.ToLower(*req.Status))
		if !domain.ValidBookingStatus(status) {
			s.logger.Warn("List: invalid status filter %q", *req.Status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
		filter.IncludeInactive = filter.IncludeInactive || status == domain.StatusCancelled
	}

	found, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d bookings", len(found))
	return models.FromDomainBookings(found), nil
}

// UpdateStatus moves a booking to a new lifecycle status. Transitions into
// cancelado must go through Cancel so the audit fields get filled.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	status := domain.BookingStatus(strings.ToLower(req.Status))
	if !domain.ValidBookingStatus(status) {
		s.logger.Warn("UpdateStatus: invalid status %q for booking %s", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: use cancellation for status cancelado", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, req.BookingID, "UpdateStatus")
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: booking %s is cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}

	if err := s.bookingRepo.UpdateStatus(ctx, req.BookingID, status); err != nil {
		s.logger.Error("UpdateStatus: repository error for booking %s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking %s moved %s -> %s", req.BookingID, booking.Status, status)
	booking.Status = status
	return models.FromDomainBooking(booking), nil
}

// Cancel marks the booking cancelled, which frees its instant for new
// bookings immediately.
func (s *Service) Cancel(ctx context.Context, req *models.CancelRequest) (*models.BookingResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	cancelledBy := req.CancelledBy
	if cancelledBy == "" {
		cancelledBy = "admin"
	}

	booking, err := s.getBooking(ctx, req.BookingID, "Cancel")
	if err != nil {
		return nil, err
	}
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking %s already cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}

	if err := s.bookingRepo.Cancel(ctx, req.BookingID, req.Reason, cancelledBy); err != nil {
		s.logger.Error("Cancel: repository error for booking %s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %s cancelled by %s, slot %s freed",
		req.BookingID, cancelledBy, booking.When.In(domain.LocalZone).Format(domain.DateTimeFormat))
	return s.GetByID(ctx, req.BookingID)
}

func (s *Service) getBooking(ctx context.Context, id uuid.UUID, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking %s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking %s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
