package process_webhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
	leadRepo "github.com/psicoagenda/booking-service/internal/infra/storage/lead"
	patientRepo "github.com/psicoagenda/booking-service/internal/infra/storage/patient"
	"github.com/psicoagenda/booking-service/internal/integrations/mailer"
	"github.com/psicoagenda/booking-service/internal/integrations/mercadopago"
	"github.com/psicoagenda/booking-service/internal/service/materializer"
)

type fakeBookingRepo struct {
	created   []*domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *b
	stored.ID = uuid.New()
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeLeadRepo struct {
	lead *domain.Lead

	markConvertedErr error
	converted        bool
	lastPaymentID    string
	statusUpdates    []domain.LeadStatus
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Lead, error) {
	if f.lead == nil || f.lead.ID != id {
		return nil, leadRepo.ErrLeadNotFound
	}
	copied := *f.lead
	return &copied, nil
}

func (f *fakeLeadRepo) MarkConverted(_ context.Context, id, bookingID uuid.UUID, paymentID string) error {
	if f.markConvertedErr != nil {
		return f.markConvertedErr
	}
	f.converted = true
	f.lead.Status = domain.LeadConverted
	f.lead.BookingID = &bookingID
	f.lead.LastPaymentID = &paymentID
	return nil
}

func (f *fakeLeadRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.LeadStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	f.lead.Status = status
	return nil
}

func (f *fakeLeadRepo) SetLastPayment(_ context.Context, id uuid.UUID, paymentID string) error {
	f.lastPaymentID = paymentID
	return nil
}

type fakePatientRepo struct {
	byID    map[uuid.UUID]*domain.Patient
	byEmail map[string]*domain.Patient
	created []*domain.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		byID:    make(map[uuid.UUID]*domain.Patient),
		byEmail: make(map[string]*domain.Patient),
	}
}

func (f *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Patient, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, patientRepo.ErrPatientNotFound
}

func (f *fakePatientRepo) GetByEmail(_ context.Context, email string) (*domain.Patient, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, patientRepo.ErrPatientNotFound
}

func (f *fakePatientRepo) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	if _, ok := f.byEmail[p.Email]; ok {
		return nil, patientRepo.ErrDuplicate
	}
	stored := *p
	stored.ID = uuid.New()
	f.byID[stored.ID] = &stored
	f.byEmail[stored.Email] = &stored
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakePaymentClient struct {
	payments map[string]*mercadopago.Payment
	err      error
}

func (f *fakePaymentClient) GetPayment(_ context.Context, paymentID string) (*mercadopago.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.payments[paymentID]; ok {
		return p, nil
	}
	return nil, mercadopago.ErrPaymentNotFound
}

type fakeMailer struct {
	sent []*mailer.ConfirmationRequest
	err  error
}

func (f *fakeMailer) SendBookingConfirmation(_ context.Context, req *mailer.ConfirmationRequest) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

type fakeMaterializer struct {
	bookings []*domain.Booking
	err      error
	params   *materializer.Params
}

func (f *fakeMaterializer) MaterializePackage(_ context.Context, p materializer.Params) ([]*domain.Booking, error) {
	f.params = &p
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	leads    *fakeLeadRepo
	patients *fakePatientRepo
	payments *fakePaymentClient
	mails    *fakeMailer
	mat      *fakeMaterializer
}

func newFixture(lead *domain.Lead) *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		leads:    &fakeLeadRepo{lead: lead},
		patients: newFakePatientRepo(),
		payments: &fakePaymentClient{payments: make(map[string]*mercadopago.Payment)},
		mails:    &fakeMailer{},
		mat:      &fakeMaterializer{},
	}
	f.uc = NewUseCase(f.bookings, f.leads, f.patients, f.payments, f.mails, f.mat, &fakeTxManager{}, noopLogger{})
	return f
}

func awaitingLead(sessionType domain.SessionType) *domain.Lead {
	prefID := "pref-123"
	return &domain.Lead{
		ID:           uuid.New(),
		Name:         "Maria Souza",
		Email:        "maria@example.com.br",
		Phone:        "+5511999990000",
		SessionType:  sessionType,
		When:         time.Date(2026, time.February, 2, 19, 0, 0, 0, domain.LocalZone),
		Value:        150,
		Installments: domain.Installments{Count: 1, PerAmount: 150},
		Status:       domain.LeadAwaitingPayment,
		PreferenceID: &prefID,
	}
}

func approvedPayment(leadID uuid.UUID) *mercadopago.Payment {
	approved := time.Date(2026, time.January, 28, 10, 0, 0, 0, time.UTC)
	return &mercadopago.Payment{
		ID:                987654,
		Status:            mercadopago.PaymentStatusApproved,
		ExternalReference: leadID.String(),
		DateApproved:      &approved,
	}
}

func TestExecute_IgnoresUnrelatedTopic(t *testing.T) {
	f := newFixture(awaitingLead(domain.SessionSingle))

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "merchant_order", PaymentID: "1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, resp.Outcome)
}

func TestExecute_RequiresPaymentID(t *testing.T) {
	f := newFixture(awaitingLead(domain.SessionSingle))

	_, err := f.uc.Execute(context.Background(), &Request{Topic: "payment"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownPaymentIgnored(t *testing.T) {
	f := newFixture(awaitingLead(domain.SessionSingle))

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "404"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, resp.Outcome)
}

func TestExecute_ProviderDownPropagates(t *testing.T) {
	f := newFixture(awaitingLead(domain.SessionSingle))
	f.payments.err = mercadopago.ErrUnavailable

	_, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.ErrorIs(t, err, ErrProviderUnreachable)
}

func TestExecute_ApprovedSingleConvertsLead(t *testing.T) {
	lead := awaitingLead(domain.SessionSingle)
	f := newFixture(lead)
	f.payments.payments["987654"] = approvedPayment(lead.ID)

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "987654"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConverted, resp.Outcome)
	require.NotNil(t, resp.BookingID)
	assert.True(t, f.leads.converted)
	assert.Equal(t, "987654", f.leads.lastPaymentID)

	// Patient was created from the lead snapshot
	require.Len(t, f.patients.created, 1)
	patient := f.patients.created[0]
	assert.Equal(t, "maria@example.com.br", patient.Email)
	assert.True(t, patient.Active)
	assert.True(t, patient.FirstConsultation)

	// Booking carries the approved payment block
	require.Len(t, f.bookings.created, 1)
	b := f.bookings.created[0]
	assert.Equal(t, patient.ID, b.PatientID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, domain.PaymentApproved, b.Payment.Status)
	assert.Equal(t, domain.MethodMercadoPago, b.Payment.Method)
	require.NotNil(t, b.Payment.TransactionID)
	assert.Equal(t, "987654", *b.Payment.TransactionID)
	require.NotNil(t, b.Payment.PaidAt)
	assert.Equal(t, time.Date(2026, time.January, 28, 10, 0, 0, 0, time.UTC), *b.Payment.PaidAt)

	require.Len(t, f.mails.sent, 1)
	assert.Equal(t, "maria@example.com.br", f.mails.sent[0].To)
}

func TestExecute_ApprovedPackageUsesMaterializer(t *testing.T) {
	lead := awaitingLead(domain.SessionMonthlyPackage)
	lead.Value = 480
	f := newFixture(lead)
	f.payments.payments["55"] = approvedPayment(lead.ID)

	principal := &domain.Booking{ID: uuid.New(), When: lead.When}
	f.mat.bookings = []*domain.Booking{principal}

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "55"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConverted, resp.Outcome)
	require.NotNil(t, f.mat.params)
	assert.Equal(t, domain.SessionMonthlyPackage, f.mat.params.Type)
	assert.Equal(t, 480.0, f.mat.params.TotalValue)
	assert.Equal(t, domain.StatusConfirmed, f.mat.params.PrincipalStatus)
	assert.Equal(t, domain.PaymentApproved, f.mat.params.Payment.Status)
	require.NotNil(t, resp.BookingID)
	assert.Equal(t, principal.ID, *resp.BookingID)
	assert.True(t, f.leads.converted)
}

func TestExecute_DuplicateDeliveryIsIdempotent(t *testing.T) {
	lead := awaitingLead(domain.SessionSingle)
	bookingID := uuid.New()
	lead.Status = domain.LeadConverted
	lead.BookingID = &bookingID

	f := newFixture(lead)
	f.payments.payments["1"] = approvedPayment(lead.ID)

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeDuplicate, resp.Outcome)
	require.NotNil(t, resp.BookingID)
	assert.Equal(t, bookingID, *resp.BookingID)
	assert.Empty(t, f.bookings.created)
	assert.Empty(t, f.mails.sent)
}

func TestExecute_ConcurrentConversionRaceLoserReportsDuplicate(t *testing.T) {
	lead := awaitingLead(domain.SessionSingle)
	f := newFixture(lead)
	f.payments.payments["1"] = approvedPayment(lead.ID)
	f.leads.markConvertedErr = leadRepo.ErrAlreadyTerminal

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, resp.Outcome)
	assert.Empty(t, f.mails.sent)
}

func TestExecute_PaidButSlotTaken(t *testing.T) {
	lead := awaitingLead(domain.SessionMonthlyPackage)
	f := newFixture(lead)
	f.payments.payments["1"] = approvedPayment(lead.ID)
	f.mat.err = &materializer.ConflictError{When: lead.When}

	_, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.ErrorIs(t, err, ErrSlotTaken)

	// Lead stays open for manual resolution
	assert.False(t, f.leads.converted)
	assert.Equal(t, domain.LeadAwaitingPayment, f.leads.lead.Status)
}

func TestExecute_RejectedClosesLead(t *testing.T) {
	lead := awaitingLead(domain.SessionSingle)
	f := newFixture(lead)
	f.payments.payments["1"] = &mercadopago.Payment{
		ID:                1,
		Status:            mercadopago.PaymentStatusRejected,
		StatusDetail:      "cc_rejected_insufficient_amount",
		ExternalReference: lead.ID.String(),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeDeclined, resp.Outcome)
	assert.Equal(t, []domain.LeadStatus{domain.LeadCancelled}, f.leads.statusUpdates)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_PendingStatusNeedsNoTransition(t *testing.T) {
	lead := awaitingLead(domain.SessionSingle)
	f := newFixture(lead)
	f.payments.payments["1"] = &mercadopago.Payment{
		ID:                1,
		Status:            mercadopago.PaymentStatusPending,
		ExternalReference: lead.ID.String(),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeIgnored, resp.Outcome)
	assert.Equal(t, "1", f.leads.lastPaymentID)
	assert.Equal(t, domain.LeadAwaitingPayment, f.leads.lead.Status)
}

func TestExecute_NoLeadReferenceIgnored(t *testing.T) {
	f := newFixture(awaitingLead(domain.SessionSingle))
	f.payments.payments["1"] = &mercadopago.Payment{ID: 1, Status: mercadopago.PaymentStatusApproved}

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, resp.Outcome)
}

func TestExecute_UnknownLeadErrors(t *testing.T) {
	f := newFixture(awaitingLead(domain.SessionSingle))
	f.payments.payments["1"] = approvedPayment(uuid.New())

	_, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.ErrorIs(t, err, ErrLeadNotFound)
}

func TestExecute_MailFailureDoesNotFailConversion(t *testing.T) {
	lead := awaitingLead(domain.SessionSingle)
	f := newFixture(lead)
	f.payments.payments["1"] = approvedPayment(lead.ID)
	f.mails.err = errors.New("mailer down")

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, resp.Outcome)
	assert.True(t, f.leads.converted)
}

func TestExecute_ReusesExistingPatientByEmail(t *testing.T) {
	lead := awaitingLead(domain.SessionSingle)
	f := newFixture(lead)
	f.payments.payments["1"] = approvedPayment(lead.ID)

	existing := &domain.Patient{ID: uuid.New(), Name: "Maria Souza", Email: lead.Email, Active: true}
	f.patients.byID[existing.ID] = existing
	f.patients.byEmail[existing.Email] = existing

	resp, err := f.uc.Execute(context.Background(), &Request{Topic: "payment", PaymentID: "1"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConverted, resp.Outcome)
	assert.Empty(t, f.patients.created)
	require.Len(t, f.bookings.created, 1)
	assert.Equal(t, existing.ID, f.bookings.created[0].PatientID)
}
