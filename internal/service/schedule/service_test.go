package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicoagenda/booking-service/internal/domain"
	availabilityRepo "github.com/psicoagenda/booking-service/internal/infra/storage/availability"
	"github.com/psicoagenda/booking-service/internal/service/schedule/models"
)

type fakeAvailabilityRepo struct {
	templates   map[time.Weekday]*domain.AvailabilityTemplate
	deactivated []time.Weekday
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{templates: make(map[time.Weekday]*domain.AvailabilityTemplate)}
}

func (f *fakeAvailabilityRepo) Upsert(_ context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	stored := *t
	stored.UpdatedAt = time.Now()
	f.templates[t.Weekday] = &stored
	return &stored, nil
}

func (f *fakeAvailabilityRepo) GetByWeekday(_ context.Context, weekday time.Weekday) (*domain.AvailabilityTemplate, error) {
	if t, ok := f.templates[weekday]; ok && t.Active {
		return t, nil
	}
	return nil, availabilityRepo.ErrTemplateNotFound
}

func (f *fakeAvailabilityRepo) Exists(_ context.Context, weekday time.Weekday) (bool, error) {
	_, ok := f.templates[weekday]
	return ok, nil
}

func (f *fakeAvailabilityRepo) ListActive(_ context.Context) ([]*domain.AvailabilityTemplate, error) {
	var out []*domain.AvailabilityTemplate
	for _, t := range f.templates {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) Deactivate(_ context.Context, weekday time.Weekday) error {
	t, ok := f.templates[weekday]
	if !ok {
		return availabilityRepo.ErrTemplateNotFound
	}
	t.Active = false
	f.deactivated = append(f.deactivated, weekday)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestConfigure(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Configure(context.Background(), &models.ConfigureRequest{
		Weekday: 1,
		Windows: []models.WindowRequest{
			{Start: "18:00", End: "19:00", Active: true},
			{Start: "20:30", End: "21:30", Active: true},
		},
		Active: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Weekday)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, "18:00", resp.Windows[0].Start)
	assert.True(t, resp.Active)
}

func TestConfigure_Validation(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), noopLogger{})

	cases := []struct {
		name string
		req  *models.ConfigureRequest
	}{
		{"weekday out of range", &models.ConfigureRequest{Weekday: 7, Active: true,
			Windows: []models.WindowRequest{{Start: "18:00", End: "19:00"}}}},
		{"active without windows", &models.ConfigureRequest{Weekday: 1, Active: true}},
		{"bad start", &models.ConfigureRequest{Weekday: 1, Active: true,
			Windows: []models.WindowRequest{{Start: "6pm", End: "19:00"}}}},
		{"empty window", &models.ConfigureRequest{Weekday: 1, Active: true,
			Windows: []models.WindowRequest{{Start: "19:00", End: "19:00"}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Configure(context.Background(), c.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByWeekday_NotFound(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), noopLogger{})

	_, err := svc.GetByWeekday(context.Background(), 2)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = svc.GetByWeekday(context.Background(), 9)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeactivate(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, noopLogger{})

	require.NoError(t, svc.SeedDefaults(context.Background()))
	require.NoError(t, svc.Deactivate(context.Background(), 1))
	assert.Equal(t, []time.Weekday{time.Monday}, repo.deactivated)
}

func TestSeedDefaults(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, noopLogger{})

	require.NoError(t, svc.SeedDefaults(context.Background()))

	for wd := time.Monday; wd <= time.Friday; wd++ {
		tpl, ok := repo.templates[wd]
		require.True(t, ok, "weekday %d", wd)
		assert.True(t, tpl.Active)
		require.Len(t, tpl.Windows, 3)
		assert.Equal(t, "18:00", tpl.Windows[0].Start.String())
		assert.Equal(t, "19:00", tpl.Windows[0].End.String())
		assert.Equal(t, "21:30", tpl.Windows[2].End.String())
	}
	_, ok := repo.templates[time.Saturday]
	assert.False(t, ok)
}

func TestSeedDefaults_KeepsExisting(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, noopLogger{})

	custom := &domain.AvailabilityTemplate{
		Weekday: time.Monday,
		Windows: []domain.AvailabilityWindow{{Start: "19:00", End: "20:00", Active: true}},
		Active:  true,
	}
	_, err := repo.Upsert(context.Background(), custom)
	require.NoError(t, err)

	require.NoError(t, svc.SeedDefaults(context.Background()))
	require.Len(t, repo.templates[time.Monday].Windows, 1)
}

func TestSeedDefaults_KeepsDeactivatedWeekday(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, noopLogger{})

	require.NoError(t, svc.SeedDefaults(context.Background()))
	require.NoError(t, svc.Deactivate(context.Background(), int(time.Monday)))

	// a restart reruns the seeding; Monday must stay off
	require.NoError(t, svc.SeedDefaults(context.Background()))

	require.False(t, repo.templates[time.Monday].Active)
	_, err := svc.GetByWeekday(context.Background(), int(time.Monday))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
