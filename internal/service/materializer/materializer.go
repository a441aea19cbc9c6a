package materializer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
)

// Params describes one package purchase to expand into concrete sessions.
type Params struct {
	PatientID    uuid.UUID
	LeadID       *uuid.UUID
	FirstWhen    time.Time
	Type         domain.SessionType
	TotalValue   float64
	Notes        *string
	Installments int

	// PrincipalStatus is pendente for direct creation and confirmado when the
	// package was already paid through checkout.
	PrincipalStatus domain.BookingStatus
	Payment         domain.Payment
}

type Service struct {
	repo      BookingRepository
	txManager TransactionManager
	logger    Logger
}

func New(repo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// MaterializePackage creates the principal session plus every weekly follow-up
// of the package in a single serializable transaction. Either all sessions are
// persisted or none. The first occupied instant aborts the expansion with a
// ConflictError naming it.
func (s *Service) MaterializePackage(ctx context.Context, p Params) ([]*domain.Booking, error) {
	total := p.Type.TotalSessions()
	if total <= 1 {
		return nil, fmt.Errorf("%w: MaterializePackage - type %q is not a package", ErrInternal, p.Type)
	}

	series := domain.SessionSeries(p.FirstWhen, p.Type)
	var created []*domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		// Preflight against the active set. The partial unique index on the
		// bookings table remains the authoritative guard for races.
		occupied, err := s.occupiedSet(txCtx, series[0], series[len(series)-1])
		if err != nil {
			return err
		}
		for _, when := range series {
			if occupied[when.Unix()] {
				return &ConflictError{When: when}
			}
		}

		principal, err := s.repo.Create(txCtx, s.principalBooking(p, series[0], total))
		if err != nil {
			return mapCreateErr(err, series[0])
		}
		created = append(created, principal)

		for i := 1; i < total; i++ {
			b, err := s.repo.Create(txCtx, s.sessionBooking(p, principal.ID, series[i], i+1, total))
			if err != nil {
				return mapCreateErr(err, series[i])
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("materializer: created %d sessions for patient %s starting %s",
		total, p.PatientID, series[0].In(domain.LocalZone).Format(domain.DateTimeFormat))
	return created, nil
}

func (s *Service) occupiedSet(ctx context.Context, from, to time.Time) (map[int64]bool, error) {
	active, err := s.repo.ListActiveBetween(ctx, from, to.Add(time.Minute))
	if err != nil {
		return nil, fmt.Errorf("%w: MaterializePackage - list active: %v", ErrInternal, err)
	}
	set := make(map[int64]bool, len(active))
	for _, b := range active {
		set[b.When.Unix()] = true
	}
	return set, nil
}

func (s *Service) principalBooking(p Params, when time.Time, total int) *domain.Booking {
	installments := p.Installments
	if installments < 1 {
		installments = 1
	}

	return &domain.Booking{
		PatientID: p.PatientID,
		LeadID:    p.LeadID,
		When:      when,
		Duration:  domain.SessionDurationMinutes,
		Type:      p.Type,
		Status:    p.PrincipalStatus,
		Value:     p.TotalValue,
		Notes:     p.Notes,
		Package: domain.PackageInfo{
			IsPackage:     true,
			PackageType:   p.Type.PackageTypeOf(),
			TotalSessions: total,
			SessionIndex:  1,
			FixedWeekday:  when.In(domain.LocalZone).Weekday(),
			FixedTime:     when.In(domain.LocalZone).Format(domain.TimeFormat),
		},
		Payment: p.Payment,
		Installments: domain.Installments{
			Count:     installments,
			PerAmount: p.TotalValue / float64(installments),
		},
	}
}

func (s *Service) sessionBooking(p Params, principalID uuid.UUID, when time.Time, index, total int) *domain.Booking {
	pkgType := p.Type.PackageTypeOf()
	note := fmt.Sprintf("Sessão %d de %d - Pacote %s", index, total, pkgType)

	return &domain.Booking{
		PatientID: p.PatientID,
		LeadID:    p.LeadID,
		When:      when,
		Duration:  domain.SessionDurationMinutes,
		Type:      p.Type,
		Status:    domain.StatusConfirmed,
		Value:     0,
		Notes:     &note,
		Package: domain.PackageInfo{
			IsPackage:     true,
			PackageType:   pkgType,
			TotalSessions: total,
			SessionIndex:  index,
			PrincipalID:   &principalID,
			FixedWeekday:  when.In(domain.LocalZone).Weekday(),
			FixedTime:     when.In(domain.LocalZone).Format(domain.TimeFormat),
		},
		Payment: domain.Payment{Status: p.Payment.Status},
		Installments: domain.Installments{
			Count:     1,
			PerAmount: 0,
		},
	}
}

func mapCreateErr(err error, when time.Time) error {
	if errors.Is(err, bookingRepo.ErrSlotTaken) {
		return &ConflictError{When: when}
	}
	return fmt.Errorf("%w: MaterializePackage - create booking: %v", ErrInternal, err)
}
