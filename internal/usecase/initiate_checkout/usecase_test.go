package initiate_checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
	patientRepo "github.com/psicoagenda/booking-service/internal/infra/storage/patient"
	"github.com/psicoagenda/booking-service/internal/integrations/mercadopago"
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

type fakeLeadRepo struct {
	created       *domain.Lead
	checkoutPref  string
	checkoutInit  string
	statusUpdates []domain.LeadStatus
}

func (f *fakeLeadRepo) Create(_ context.Context, l *domain.Lead) (*domain.Lead, error) {
	stored := *l
	stored.ID = uuid.New()
	f.created = &stored
	return &stored, nil
}

func (f *fakeLeadRepo) SetCheckout(_ context.Context, id uuid.UUID, preferenceID, initPoint string) error {
	f.checkoutPref = preferenceID
	f.checkoutInit = initPoint
	return nil
}

func (f *fakeLeadRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.LeadStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

type fakePatientRepo struct {
	byEmail map[string]*domain.Patient
}

func (f *fakePatientRepo) GetByEmail(_ context.Context, email string) (*domain.Patient, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, patientRepo.ErrPatientNotFound
}

type fakePaymentClient struct {
	pref *mercadopago.Preference
	err  error
	req  *mercadopago.PreferenceRequest
}

func (f *fakePaymentClient) CreatePreference(_ context.Context, req *mercadopago.PreferenceRequest) (*mercadopago.Preference, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.pref, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testURLs = CheckoutURLs{
	NotificationURL: "https://agenda.example.com.br/api/v1/webhooks/mercadopago",
	SuccessURL:      "https://agenda.example.com.br/sucesso",
	PendingURL:      "https://agenda.example.com.br/pendente",
	FailureURL:      "https://agenda.example.com.br/erro",
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	leads    *fakeLeadRepo
	patients *fakePatientRepo
	payments *fakePaymentClient
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		leads:    &fakeLeadRepo{},
		patients: &fakePatientRepo{byEmail: map[string]*domain.Patient{}},
		payments: &fakePaymentClient{pref: &mercadopago.Preference{
			ID:               "pref-42",
			InitPoint:        "https://mercadopago.example/init",
			SandboxInitPoint: "https://sandbox.mercadopago.example/init",
		}},
	}
	pricing := Pricing{Single: 150, MonthlyPackage: 480, AnnualPackage: 5760}
	f.uc = NewUseCase(f.bookings, f.leads, f.patients, f.payments, pricing, testURLs, noopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{
		Name:        "Carla Mendes",
		Email:       "carla@example.com.br",
		Phone:       "+5511988887777",
		SessionType: domain.SessionSingle,
		When:        time.Date(2026, time.February, 3, 19, 0, 0, 0, domain.LocalZone),
		Origin:      "site",
	}
}

func TestExecute_CreatesLeadAndPreference(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pref-42", resp.PreferenceID)
	assert.Equal(t, "https://mercadopago.example/init", resp.InitPoint)
	assert.Equal(t, 150.0, resp.Value)
	assert.Equal(t, 1, resp.TotalSessions)

	require.NotNil(t, f.leads.created)
	lead := f.leads.created
	assert.Equal(t, resp.LeadID, lead.ID)
	assert.Equal(t, domain.LeadAwaitingPayment, lead.Status)
	assert.Equal(t, "carla@example.com.br", lead.Email)
	assert.Nil(t, lead.PatientID)
	assert.Equal(t, "pref-42", f.leads.checkoutPref)

	require.NotNil(t, f.payments.req)
	pr := f.payments.req
	require.Len(t, pr.Items, 1)
	assert.Equal(t, "Sessão de psicoterapia", pr.Items[0].Title)
	assert.Equal(t, "BRL", pr.Items[0].CurrencyID)
	assert.Equal(t, lead.ID.String(), pr.ExternalReference)
	assert.Equal(t, lead.ID.String(), pr.Metadata["lead_id"])
	assert.Equal(t, testURLs.NotificationURL, pr.NotificationURL)
	assert.Equal(t, "approved", pr.AutoReturn)
}

func TestExecute_MonthlyPackagePricing(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.SessionType = domain.SessionMonthlyPackage
	req.Installments = 2

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 480.0, resp.Value)
	assert.Equal(t, 4, resp.TotalSessions)
	assert.Equal(t, "Pacote mensal - 4 sessões de psicoterapia", f.payments.req.Items[0].Title)
	assert.Equal(t, 2, f.leads.created.Installments.Count)
	assert.Equal(t, 240.0, f.leads.created.Installments.PerAmount)
}

func TestExecute_ReturningPatientLinked(t *testing.T) {
	f := newFixture()
	existing := &domain.Patient{ID: uuid.New(), Email: "carla@example.com.br"}
	f.patients.byEmail[existing.Email] = existing

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, f.leads.created.PatientID)
	assert.Equal(t, existing.ID, *f.leads.created.PatientID)
}

func TestExecute_SeriesOccupiedRejected(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.SessionType = domain.SessionMonthlyPackage
	f.bookings.occupied = []time.Time{req.When.AddDate(0, 0, 21)}

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Contains(t, err.Error(), "24/02/2026 19:00")
	assert.Nil(t, f.leads.created)
}

func TestExecute_ProviderDownCancelsLead(t *testing.T) {
	f := newFixture()
	f.payments.err = mercadopago.ErrUnavailable

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrProviderUnreachable)

	require.NotNil(t, f.leads.created)
	assert.Equal(t, []domain.LeadStatus{domain.LeadCancelled}, f.leads.statusUpdates)
	assert.Empty(t, f.leads.checkoutPref)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.Name = " " }},
		{"bad email", func(r *Request) { r.Email = "carla.example.com.br" }},
		{"missing phone", func(r *Request) { r.Phone = "" }},
		{"unknown type", func(r *Request) { r.SessionType = "quinzenal" }},
		{"weekend", func(r *Request) {
			r.When = time.Date(2026, time.February, 7, 19, 0, 0, 0, domain.LocalZone)
		}},
		{"off-catalog time", func(r *Request) {
			r.When = time.Date(2026, time.February, 3, 17, 0, 0, 0, domain.LocalZone)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			c.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
