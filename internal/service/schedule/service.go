package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
	availabilityRepo "github.com/psicoagenda/booking-service/internal/infra/storage/availability"
	"github.com/psicoagenda/booking-service/internal/service/schedule/models"
	"github.com/psicoagenda/booking-service/pkg/types"
)

// Service manages the weekday availability templates. Templates document and
// seed the schedule shown to admins; the slot catalog itself works off the
// fixed candidate times.
type Service struct {
	repo   AvailabilityRepository
	logger Logger
}

func NewService(repo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns every active weekday template
func (s *Service) List(ctx context.Context) (*models.TemplateListResponse, error) {
	found, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTemplates(found), nil
}

// GetByWeekday returns one weekday template
func (s *Service) GetByWeekday(ctx context.Context, weekday int) (*models.TemplateResponse, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, weekday)
	}

	t, err := s.repo.GetByWeekday(ctx, time.Weekday(weekday))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			s.logger.Warn("GetByWeekday: no template for weekday %d", weekday)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("GetByWeekday: repository error for weekday %d: %v", weekday, err)
		return nil, fmt.Errorf("%w: GetByWeekday - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTemplate(t), nil
}

// Configure replaces the template of one weekday
func (s *Service) Configure(ctx context.Context, req *models.ConfigureRequest) (*models.TemplateResponse, error) {
	template, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("Configure: validation failed: %v", err)
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, template)
	if err != nil {
		s.logger.Error("Configure: repository error for weekday %d: %v", req.Weekday, err)
		return nil, fmt.Errorf("%w: Configure - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Configure: weekday %d now has %d windows (active=%v)",
		req.Weekday, len(stored.Windows), stored.Active)
	return models.FromDomainTemplate(stored), nil
}

// Deactivate disables a weekday template without deleting it
func (s *Service) Deactivate(ctx context.Context, weekday int) error {
	if weekday < 0 || weekday > 6 {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, weekday)
	}

	if err := s.repo.Deactivate(ctx, time.Weekday(weekday)); err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			s.logger.Warn("Deactivate: no template for weekday %d", weekday)
			return ErrTemplateNotFound
		}
		s.logger.Error("Deactivate: repository error for weekday %d: %v", weekday, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: weekday %d disabled", weekday)
	return nil
}

// SeedDefaults writes the standard evening schedule for every working day.
// Existing templates are left untouched, including deactivated ones, so a
// restart never re-enables a weekday an admin switched off.
func (s *Service) SeedDefaults(ctx context.Context) error {
	for wd := time.Monday; wd <= time.Friday; wd++ {
		exists, err := s.repo.Exists(ctx, wd)
		if err != nil {
			return fmt.Errorf("%w: SeedDefaults - repository error: %v", ErrInternal, err)
		}
		if exists {
			continue
		}

		var windows []domain.AvailabilityWindow
		for _, t := range domain.CandidateTimes {
			end, err := t.AddMinutes(domain.SessionDurationMinutes)
			if err != nil {
				return fmt.Errorf("%w: SeedDefaults - bad candidate time %q: %v", ErrInternal, t, err)
			}
			windows = append(windows, domain.AvailabilityWindow{Start: t, End: end, Active: true})
		}

		if _, err := s.repo.Upsert(ctx, &domain.AvailabilityTemplate{
			Weekday: wd,
			Windows: windows,
			Active:  true,
		}); err != nil {
			return fmt.Errorf("%w: SeedDefaults - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("SeedDefaults: seeded weekday %d", wd)
	}
	return nil
}

func (s *Service) toDomain(req *models.ConfigureRequest) (*domain.AvailabilityTemplate, error) {
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, req.Weekday)
	}
	if len(req.Windows) == 0 && req.Active {
		return nil, fmt.Errorf("%w: an active template needs at least one window", ErrInvalidInput)
	}

	template := &domain.AvailabilityTemplate{
		Weekday: time.Weekday(req.Weekday),
		Active:  req.Active,
	}
	for _, w := range req.Windows {
		start, err := types.NewTimeStringFromString(w.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid window start %q", ErrInvalidInput, w.Start)
		}
		end, err := types.NewTimeStringFromString(w.End)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid window end %q", ErrInvalidInput, w.End)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: window %s-%s is empty", ErrInvalidInput, w.Start, w.End)
		}
		template.Windows = append(template.Windows, domain.AvailabilityWindow{
			Start:  start,
			End:    end,
			Active: w.Active,
		})
	}
	return template, nil
}
