package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
	"github.com/psicoagenda/booking-service/internal/integrations/mailer"
)

// UseCase confirms out-of-band payments. Repeated confirmations of the same
// booking are no-ops; the first one wins and keeps its payment block.
type UseCase struct {
	bookingRepo  BookingRepository
	patientRepo  PatientRepository
	mailerClient MailerClient
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	patientRepo PatientRepository,
	mailerClient MailerClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		patientRepo:  patientRepo,
		mailerClient: mailerClient,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%s method=%s", req.BookingID, req.Method)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking %s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get booking %s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}

	if booking.Status == domain.StatusCancelled {
		uc.logger.Warn("ConfirmPayment: booking %s is cancelled", req.BookingID)
		return nil, ErrCancelled
	}

	if booking.IsPaid() {
		uc.logger.Info("ConfirmPayment: booking %s already paid, nothing to do", req.BookingID)
		return &Response{
			BookingID:     booking.ID,
			Status:        string(booking.Payment.Status),
			Method:        string(booking.Payment.Method),
			PaidAt:        booking.Payment.PaidAt,
			AlreadyPaid:   true,
			BookingStatus: string(booking.Status),
		}, nil
	}

	paidAt := uc.timeProvider.Now()
	if err := uc.bookingRepo.ConfirmPayment(ctx, booking.ID, req.Method, req.TransactionID, paidAt, req.Proof); err != nil {
		uc.logger.Error("ConfirmPayment: failed to confirm booking %s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: confirm payment: %v", ErrInternal, err)
	}

	uc.sendConfirmation(ctx, booking)

	uc.logger.Info("ConfirmPayment: booking %s confirmed via %s", booking.ID, req.Method)
	return &Response{
		BookingID:     booking.ID,
		Status:        string(domain.PaymentApproved),
		Method:        string(req.Method),
		PaidAt:        &paidAt,
		BookingStatus: string(domain.StatusConfirmed),
	}, nil
}

func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	switch req.Method {
	case domain.MethodPix, domain.MethodCash, domain.MethodTransfer, domain.MethodMercadoPago:
		return nil
	}
	return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
}

func (uc *UseCase) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	patient, err := uc.patientRepo.GetByID(ctx, booking.PatientID)
	if err != nil {
		uc.logger.Warn("ConfirmPayment: patient %s lookup failed, skipping email: %v", booking.PatientID, err)
		return
	}

	err = uc.mailerClient.SendBookingConfirmation(ctx, &mailer.ConfirmationRequest{
		To:            patient.Email,
		PatientName:   patient.Name,
		SessionType:   string(booking.Type),
		When:          booking.When,
		TotalSessions: booking.Type.TotalSessions(),
		Value:         booking.Value,
	})
	if err != nil {
		uc.logger.Warn("ConfirmPayment: confirmation email for booking %s failed: %v", booking.ID, err)
	}
}
