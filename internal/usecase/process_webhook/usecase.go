package process_webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
	leadRepo "github.com/psicoagenda/booking-service/internal/infra/storage/lead"
	patientRepo "github.com/psicoagenda/booking-service/internal/infra/storage/patient"
	"github.com/psicoagenda/booking-service/internal/integrations/mailer"
	"github.com/psicoagenda/booking-service/internal/integrations/mercadopago"
	"github.com/psicoagenda/booking-service/internal/service/materializer"
)

const topicPayment = "payment"

// errAlreadyConverted aborts the conversion transaction when another delivery
// of the same notification won the race.
var errAlreadyConverted = errors.New("process_webhook: lead already converted")

// UseCase drives a lead through the payment state machine. The webhook body
// is never trusted for status; the payment is re-fetched from the provider
// and only its status moves the lead.
type UseCase struct {
	bookingRepo   BookingRepository
	leadRepo      LeadRepository
	patientRepo   PatientRepository
	paymentClient PaymentClient
	mailerClient  MailerClient
	materializer  Materializer
	txManager     TransactionManager
	logger        Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	leadRepo LeadRepository,
	patientRepo PatientRepository,
	paymentClient PaymentClient,
	mailerClient MailerClient,
	mat Materializer,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		leadRepo:      leadRepo,
		patientRepo:   patientRepo,
		paymentClient: paymentClient,
		mailerClient:  mailerClient,
		materializer:  mat,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Topic != topicPayment {
		uc.logger.Info("ProcessWebhook: ignoring topic %q", req.Topic)
		return &Response{Outcome: OutcomeIgnored}, nil
	}
	if req.PaymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}

	// 1. Re-fetch the payment; the notification only names it
	payment, err := uc.paymentClient.GetPayment(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, mercadopago.ErrPaymentNotFound) {
			uc.logger.Warn("ProcessWebhook: payment %s not found at provider, ignoring", req.PaymentID)
			return &Response{Outcome: OutcomeIgnored}, nil
		}
		uc.logger.Error("ProcessWebhook: failed to fetch payment %s: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: get payment %s: %v", ErrProviderUnreachable, req.PaymentID, err)
	}

	// 2. Correlate back to the lead
	ref := payment.LeadReference()
	leadID, err := uuid.Parse(ref)
	if err != nil {
		uc.logger.Warn("ProcessWebhook: payment %s carries no lead reference (%q), ignoring", req.PaymentID, ref)
		return &Response{Outcome: OutcomeIgnored}, nil
	}

	lead, err := uc.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			uc.logger.Error("ProcessWebhook: payment %s references unknown lead %s", req.PaymentID, leadID)
			return nil, fmt.Errorf("%w: %s", ErrLeadNotFound, leadID)
		}
		uc.logger.Error("ProcessWebhook: failed to get lead %s: %v", leadID, err)
		return nil, fmt.Errorf("%w: get lead: %v", ErrInternal, err)
	}

	// Correlation key is recorded even for non-final statuses
	if err := uc.leadRepo.SetLastPayment(ctx, lead.ID, req.PaymentID); err != nil {
		uc.logger.Warn("ProcessWebhook: failed to record payment %s on lead %s: %v", req.PaymentID, lead.ID, err)
	}

	// 3. Act on the provider's status
	switch payment.Status {
	case mercadopago.PaymentStatusApproved:
		return uc.convert(ctx, lead, payment, req.PaymentID)
	case mercadopago.PaymentStatusRejected, mercadopago.PaymentStatusCancelled:
		return uc.decline(ctx, lead, payment)
	default:
		uc.logger.Info("ProcessWebhook: payment %s status %q needs no transition for lead %s",
			req.PaymentID, payment.Status, lead.ID)
		return &Response{Outcome: OutcomeIgnored, LeadID: &lead.ID}, nil
	}
}

// convert turns an approved lead into its bookings. Booking creation and the
// lead's transition to convertido commit together; a concurrent duplicate
// delivery rolls its bookings back when the conditional update finds the lead
// already terminal.
func (uc *UseCase) convert(
	ctx context.Context,
	lead *domain.Lead,
	payment *mercadopago.Payment,
	paymentID string,
) (*Response, error) {
	if lead.IsConverted() {
		uc.logger.Info("ProcessWebhook: lead %s already converted to booking %s", lead.ID, lead.BookingID)
		return &Response{Outcome: OutcomeDuplicate, LeadID: &lead.ID, BookingID: lead.BookingID}, nil
	}
	if lead.Status.IsTerminal() {
		uc.logger.Warn("ProcessWebhook: approved payment %s for terminal lead %s (status=%s)",
			paymentID, lead.ID, lead.Status)
		return &Response{Outcome: OutcomeDuplicate, LeadID: &lead.ID}, nil
	}

	patient, err := uc.ensurePatient(ctx, lead)
	if err != nil {
		return nil, err
	}

	paidAt := time.Now()
	if payment.DateApproved != nil {
		paidAt = *payment.DateApproved
	}
	paymentBlock := domain.Payment{
		Status:        domain.PaymentApproved,
		Method:        domain.MethodMercadoPago,
		TransactionID: &paymentID,
		PreferenceID:  lead.PreferenceID,
		PaidAt:        &paidAt,
	}

	var principal *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if lead.SessionType.IsPackage() {
			created, err := uc.materializer.MaterializePackage(txCtx, materializer.Params{
				PatientID:       patient.ID,
				LeadID:          &lead.ID,
				FirstWhen:       lead.When,
				Type:            lead.SessionType,
				TotalValue:      lead.Value,
				Notes:           lead.Notes,
				Installments:    lead.Installments.Count,
				PrincipalStatus: domain.StatusConfirmed,
				Payment:         paymentBlock,
			})
			if err != nil {
				return err
			}
			principal = created[0]
		} else {
			b, err := uc.createSingle(txCtx, lead, patient.ID, paymentBlock)
			if err != nil {
				return err
			}
			principal = b
		}

		if err := uc.leadRepo.MarkConverted(txCtx, lead.ID, principal.ID, paymentID); err != nil {
			if errors.Is(err, leadRepo.ErrAlreadyTerminal) {
				return errAlreadyConverted
			}
			return fmt.Errorf("%w: mark converted: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return uc.mapConvertError(ctx, lead, err)
	}

	uc.logger.Info("ProcessWebhook: lead %s converted, principal booking %s", lead.ID, principal.ID)
	uc.sendConfirmation(ctx, lead, patient, principal)

	return &Response{Outcome: OutcomeConverted, LeadID: &lead.ID, BookingID: &principal.ID}, nil
}

func (uc *UseCase) decline(ctx context.Context, lead *domain.Lead, payment *mercadopago.Payment) (*Response, error) {
	if lead.Status.IsTerminal() {
		uc.logger.Info("ProcessWebhook: declined payment for terminal lead %s, nothing to do", lead.ID)
		return &Response{Outcome: OutcomeDuplicate, LeadID: &lead.ID}, nil
	}

	if err := uc.leadRepo.UpdateStatus(ctx, lead.ID, domain.LeadCancelled); err != nil {
		uc.logger.Error("ProcessWebhook: failed to cancel lead %s: %v", lead.ID, err)
		return nil, fmt.Errorf("%w: cancel lead: %v", ErrInternal, err)
	}

	uc.logger.Info("ProcessWebhook: lead %s closed after %s payment (detail=%s)",
		lead.ID, payment.Status, payment.StatusDetail)
	return &Response{Outcome: OutcomeDeclined, LeadID: &lead.ID}, nil
}

// ensurePatient resolves the patient for a paying lead: the linked record if
// the lead carries one, an email match otherwise, a fresh record as a last
// resort.
func (uc *UseCase) ensurePatient(ctx context.Context, lead *domain.Lead) (*domain.Patient, error) {
	if lead.PatientID != nil {
		p, err := uc.patientRepo.GetByID(ctx, *lead.PatientID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, patientRepo.ErrPatientNotFound) {
			return nil, fmt.Errorf("%w: get patient: %v", ErrInternal, err)
		}
		uc.logger.Warn("ProcessWebhook: lead %s links missing patient %s, falling back to email", lead.ID, lead.PatientID)
	}

	p, err := uc.patientRepo.GetByEmail(ctx, lead.Email)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, patientRepo.ErrPatientNotFound) {
		return nil, fmt.Errorf("%w: patient lookup: %v", ErrInternal, err)
	}

	created, err := uc.patientRepo.Create(ctx, &domain.Patient{
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             lead.Phone,
		CPF:               lead.CPF,
		BirthDate:         lead.BirthDate,
		Address:           lead.Address,
		Active:            true,
		FirstConsultation: true,
	})
	if err == nil {
		uc.logger.Info("ProcessWebhook: created patient %s for lead %s", created.ID, lead.ID)
		return created, nil
	}
	if errors.Is(err, patientRepo.ErrDuplicate) {
		// Lost a race against another conversion; the winner's record serves
		return uc.patientRepo.GetByEmail(ctx, lead.Email)
	}
	return nil, fmt.Errorf("%w: create patient: %v", ErrInternal, err)
}

func (uc *UseCase) createSingle(
	ctx context.Context,
	lead *domain.Lead,
	patientID uuid.UUID,
	paymentBlock domain.Payment,
) (*domain.Booking, error) {
	installments := lead.Installments.Count
	if installments < 1 {
		installments = 1
	}
	return uc.bookingRepo.Create(ctx, &domain.Booking{
		PatientID: patientID,
		LeadID:    &lead.ID,
		When:      lead.When,
		Duration:  domain.SessionDurationMinutes,
		Type:      domain.SessionSingle,
		Status:    domain.StatusConfirmed,
		Value:     lead.Value,
		Notes:     lead.Notes,
		Payment:   paymentBlock,
		Installments: domain.Installments{
			Count:     installments,
			PerAmount: lead.Value / float64(installments),
		},
	})
}

func (uc *UseCase) mapConvertError(ctx context.Context, lead *domain.Lead, err error) (*Response, error) {
	var conflict *materializer.ConflictError
	switch {
	case errors.Is(err, errAlreadyConverted):
		uc.logger.Info("ProcessWebhook: lead %s converted by a concurrent delivery", lead.ID)
		fresh, ferr := uc.leadRepo.GetByID(ctx, lead.ID)
		if ferr == nil {
			return &Response{Outcome: OutcomeDuplicate, LeadID: &lead.ID, BookingID: fresh.BookingID}, nil
		}
		return &Response{Outcome: OutcomeDuplicate, LeadID: &lead.ID}, nil
	case errors.As(err, &conflict):
		// Paid for a slot that got taken in the meantime. The lead stays
		// aguardando_pagamento for manual resolution and refund.
		uc.logger.Error("ProcessWebhook: lead %s paid but slot %s is taken, manual intervention required",
			lead.ID, conflict.When.In(domain.LocalZone).Format(domain.DateTimeFormat))
		return nil, fmt.Errorf("%w: %s", ErrSlotTaken,
			conflict.When.In(domain.LocalZone).Format(domain.DateTimeFormat))
	case errors.Is(err, bookingRepo.ErrSlotTaken):
		uc.logger.Error("ProcessWebhook: lead %s paid but slot is taken: %v", lead.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrSlotTaken, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("ProcessWebhook: conversion of lead %s failed: %v", lead.ID, err)
		return nil, err
	default:
		uc.logger.Error("ProcessWebhook: conversion of lead %s failed: %v", lead.ID, err)
		return nil, fmt.Errorf("%w: convert: %v", ErrInternal, err)
	}
}

func (uc *UseCase) sendConfirmation(ctx context.Context, lead *domain.Lead, patient *domain.Patient, principal *domain.Booking) {
	err := uc.mailerClient.SendBookingConfirmation(ctx, &mailer.ConfirmationRequest{
		To:            patient.Email,
		PatientName:   patient.Name,
		SessionType:   string(lead.SessionType),
		When:          principal.When,
		TotalSessions: lead.SessionType.TotalSessions(),
		Value:         lead.Value,
	})
	if err != nil {
		uc.logger.Warn("ProcessWebhook: confirmation email for lead %s failed: %v", lead.ID, err)
	}
}
