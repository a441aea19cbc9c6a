package initiate_checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
	patientRepo "github.com/psicoagenda/booking-service/internal/infra/storage/patient"
	"github.com/psicoagenda/booking-service/internal/integrations/mercadopago"
)

// UseCase turns a booking form submission into a lead plus a provider
// checkout session. No booking exists yet; the slot is only claimed once the
// provider confirms payment through the webhook.
type UseCase struct {
	bookingRepo   BookingRepository
	leadRepo      LeadRepository
	patientRepo   PatientRepository
	paymentClient PaymentClient
	pricing       Pricing
	urls          CheckoutURLs
	logger        Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	leadRepo LeadRepository,
	patientRepo PatientRepository,
	paymentClient PaymentClient,
	pricing Pricing,
	urls CheckoutURLs,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		leadRepo:      leadRepo,
		patientRepo:   patientRepo,
		paymentClient: paymentClient,
		pricing:       pricing,
		urls:          urls,
		logger:        logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("InitiateCheckout: email=%s type=%s when=%s",
		req.Email, req.SessionType, req.When.In(domain.LocalZone).Format(domain.DateTimeFormat))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("InitiateCheckout: validation failed: %v", err)
		return nil, err
	}

	// 2. Reject instants that are already gone. Not authoritative, the
	// webhook still re-checks, but it keeps the patient from paying for a
	// slot that was never going to materialize.
	if err := uc.checkSeriesFree(ctx, req); err != nil {
		return nil, err
	}

	// 3. Snapshot the form into a lead
	value := uc.pricing.PriceFor(req.SessionType)
	installments := req.Installments
	if installments < 1 {
		installments = 1
	}

	lead := &domain.Lead{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CPF:         req.CPF,
		BirthDate:   req.BirthDate,
		Address:     req.Address,
		SessionType: req.SessionType,
		When:        req.When,
		Value:       value,
		Notes:       req.Notes,
		Installments: domain.Installments{
			Count:     installments,
			PerAmount: value / float64(installments),
		},
		Status: domain.LeadAwaitingPayment,
		Origin: req.Origin,
	}

	// Returning patients are linked up front so conversion can skip the
	// email lookup.
	if patient, err := uc.patientRepo.GetByEmail(ctx, req.Email); err == nil {
		lead.PatientID = &patient.ID
	} else if !errors.Is(err, patientRepo.ErrPatientNotFound) {
		uc.logger.Error("InitiateCheckout: patient lookup failed for %s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: patient lookup: %v", ErrInternal, err)
	}

	lead, err := uc.leadRepo.Create(ctx, lead)
	if err != nil {
		uc.logger.Error("InitiateCheckout: failed to create lead: %v", err)
		return nil, fmt.Errorf("%w: create lead: %v", ErrInternal, err)
	}

	// 4. Open the provider checkout session
	pref, err := uc.paymentClient.CreatePreference(ctx, uc.preferenceRequest(lead))
	if err != nil {
		// The lead is dead without a checkout session; close it so the
		// admin listing does not show it as waiting forever.
		if stErr := uc.leadRepo.UpdateStatus(ctx, lead.ID, domain.LeadCancelled); stErr != nil {
			uc.logger.Error("InitiateCheckout: failed to cancel lead %s after provider error: %v", lead.ID, stErr)
		}
		if errors.Is(err, mercadopago.ErrUnavailable) || errors.Is(err, mercadopago.ErrUnauthorized) {
			uc.logger.Error("InitiateCheckout: provider unavailable for lead %s: %v", lead.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
		}
		uc.logger.Error("InitiateCheckout: create preference failed for lead %s: %v", lead.ID, err)
		return nil, fmt.Errorf("%w: create preference: %v", ErrInternal, err)
	}

	if err := uc.leadRepo.SetCheckout(ctx, lead.ID, pref.ID, pref.InitPoint); err != nil {
		uc.logger.Error("InitiateCheckout: failed to store checkout keys for lead %s: %v", lead.ID, err)
		return nil, fmt.Errorf("%w: store checkout keys: %v", ErrInternal, err)
	}

	uc.logger.Info("InitiateCheckout: lead=%s preference=%s", lead.ID, pref.ID)
	return &Response{
		LeadID:           lead.ID,
		PreferenceID:     pref.ID,
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
		Value:            value,
		TotalSessions:    req.SessionType.TotalSessions(),
	}, nil
}

func (uc *UseCase) checkSeriesFree(ctx context.Context, req *Request) error {
	series := domain.SessionSeries(req.When, req.SessionType)
	active, err := uc.bookingRepo.ListActiveBetween(ctx, series[0], series[len(series)-1].Add(time.Minute))
	if err != nil {
		uc.logger.Error("InitiateCheckout: failed to list active bookings: %v", err)
		return fmt.Errorf("%w: list active: %v", ErrInternal, err)
	}
	occupied := make(map[int64]bool, len(active))
	for _, b := range active {
		occupied[b.When.Unix()] = true
	}
	for _, when := range series {
		if occupied[when.Unix()] {
			uc.logger.Warn("InitiateCheckout: slot %s already taken",
				when.In(domain.LocalZone).Format(domain.DateTimeFormat))
			return fmt.Errorf("%w: %s", ErrSlotTaken, when.In(domain.LocalZone).Format(domain.DateTimeFormat))
		}
	}
	return nil
}

func (uc *UseCase) preferenceRequest(lead *domain.Lead) *mercadopago.PreferenceRequest {
	return &mercadopago.PreferenceRequest{
		Items: []mercadopago.Item{{
			Title:      itemTitle(lead.SessionType),
			Quantity:   1,
			UnitPrice:  lead.Value,
			CurrencyID: "BRL",
		}},
		ExternalReference: lead.ID.String(),
		Metadata:          map[string]string{"lead_id": lead.ID.String()},
		NotificationURL:   uc.urls.NotificationURL,
		BackURLs: &mercadopago.BackURLs{
			Success: uc.urls.SuccessURL,
			Pending: uc.urls.PendingURL,
			Failure: uc.urls.FailureURL,
		},
		AutoReturn: "approved",
	}
}

func itemTitle(t domain.SessionType) string {
	switch t {
	case domain.SessionMonthlyPackage:
		return "Pacote mensal - 4 sessões de psicoterapia"
	case domain.SessionAnnualPackage:
		return "Pacote anual - 48 sessões de psicoterapia"
	default:
		return "Sessão de psicoterapia"
	}
}
