package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/psicoagenda/booking-service/internal/domain"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
	patientRepo "github.com/psicoagenda/booking-service/internal/infra/storage/patient"
	"github.com/psicoagenda/booking-service/internal/service/materializer"
)

// UseCase creates bookings directly. Packages are expanded atomically; a
// single occupied instant anywhere in the series rejects the whole request.
type UseCase struct {
	bookingRepo  BookingRepository
	patientRepo  PatientRepository
	materializer Materializer
	pricing      Pricing
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	patientRepo PatientRepository,
	mat Materializer,
	pricing Pricing,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		patientRepo:  patientRepo,
		materializer: mat,
		pricing:      pricing,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: patient=%s type=%s when=%s",
		req.PatientID, req.Type, req.When.In(domain.LocalZone).Format(domain.DateTimeFormat))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the patient
	if _, err := uc.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			uc.logger.Warn("CreateBooking: patient %s not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get patient %s: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	// 3. Resolve the price
	value := uc.pricing.PriceFor(req.Type)
	if req.Value != nil {
		value = *req.Value
	}
	installments := req.Installments
	if installments < 1 {
		installments = 1
	}
	method := req.Method
	if method == "" {
		method = domain.MethodPix
	}

	// 4. Create
	var created []*domain.Booking
	var err error
	if req.Type.IsPackage() {
		created, err = uc.materializer.MaterializePackage(ctx, materializer.Params{
			PatientID:       req.PatientID,
			FirstWhen:       req.When,
			Type:            req.Type,
			TotalValue:      value,
			Notes:           req.Notes,
			Installments:    installments,
			PrincipalStatus: domain.StatusPending,
			Payment:         domain.Payment{Status: domain.PaymentPending, Method: method},
		})
	} else {
		created, err = uc.createSingle(ctx, req, value, installments, method)
	}
	if err != nil {
		return nil, uc.mapCreateError(err)
	}

	principal := created[0]
	resp := &Response{
		PrincipalID:   principal.ID,
		TotalSessions: len(created),
		TotalValue:    value,
	}
	for _, b := range created {
		resp.Bookings = append(resp.Bookings, CreatedBooking{
			ID:           b.ID,
			When:         b.When,
			Status:       string(b.Status),
			SessionIndex: b.Package.SessionIndex,
			Value:        b.Value,
		})
	}

	uc.logger.Info("CreateBooking: created %d sessions, principal=%s", len(created), principal.ID)
	return resp, nil
}

func (uc *UseCase) createSingle(
	ctx context.Context,
	req *Request,
	value float64,
	installments int,
	method domain.PaymentMethod,
) ([]*domain.Booking, error) {
	// Preflight keeps the common case friendly; the unique index decides races.
	_, err := uc.bookingRepo.FindActiveByWhen(ctx, req.When)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", bookingRepo.ErrSlotTaken,
			req.When.In(domain.LocalZone).Format(domain.DateTimeFormat))
	case !errors.Is(err, bookingRepo.ErrBookingNotFound):
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}

	b, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		PatientID: req.PatientID,
		When:      req.When,
		Duration:  domain.SessionDurationMinutes,
		Type:      domain.SessionSingle,
		Status:    domain.StatusPending,
		Value:     value,
		Notes:     req.Notes,
		Payment:   domain.Payment{Status: domain.PaymentPending, Method: method},
		Installments: domain.Installments{
			Count:     installments,
			PerAmount: value / float64(installments),
		},
	})
	if err != nil {
		return nil, err
	}
	return []*domain.Booking{b}, nil
}

func (uc *UseCase) mapCreateError(err error) error {
	var conflict *materializer.ConflictError
	switch {
	case errors.As(err, &conflict):
		uc.logger.Warn("CreateBooking: series conflict at %s",
			conflict.When.In(domain.LocalZone).Format(domain.DateTimeFormat))
		return fmt.Errorf("%w: %s", ErrSlotTaken,
			conflict.When.In(domain.LocalZone).Format(domain.DateTimeFormat))
	case errors.Is(err, bookingRepo.ErrSlotTaken):
		uc.logger.Warn("CreateBooking: slot taken: %v", err)
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: create failed: %v", err)
		return fmt.Errorf("%w: create failed: %v", ErrInternal, err)
	}
}
