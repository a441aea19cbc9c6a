package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/pkg/types"
)

// UseCase computes the slot catalog for one day. A candidate time is offered
// only when every session the booking would materialize is free, so a package
// checks its whole weekly series, not just the first instant.
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := req.Date.In(domain.LocalZone)
	if !domain.IsWorkingDay(day.Weekday()) {
		uc.logger.Info("GetAvailableSlots: %s is not a working day", day.Format(domain.DateFormat))
		return nil, ErrNonWorkingDay
	}

	// One query covers every series of the day: from the first candidate of
	// the day to the last session of the longest series starting at the last
	// candidate.
	firstSeries, err := seriesFor(day, domain.CandidateTimes[0], req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - build series: %v", ErrInternal, err)
	}
	lastSeries, err := seriesFor(day, domain.CandidateTimes[len(domain.CandidateTimes)-1], req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - build series: %v", ErrInternal, err)
	}

	active, err := uc.bookingRepo.ListActiveBetween(ctx, firstSeries[0], lastSeries[len(lastSeries)-1].Add(time.Minute))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - list active: %v", ErrInternal, err)
	}
	occupied := make(map[int64]bool, len(active))
	for _, b := range active {
		occupied[b.When.Unix()] = true
	}

	resp := &Response{
		Date:          day.Format(domain.DateFormat),
		SessionType:   string(req.Type),
		TotalSessions: req.Type.TotalSessions(),
	}
	for _, t := range domain.CandidateTimes {
		series, err := seriesFor(day, t, req.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAvailableSlots - build series: %v", ErrInternal, err)
		}
		free := true
		for _, when := range series {
			if occupied[when.Unix()] {
				free = false
				break
			}
		}
		resp.Slots = append(resp.Slots, Slot{Time: t, Available: free})
		if free {
			resp.Available = append(resp.Available, t)
		}
	}

	uc.logger.Info("GetAvailableSlots: date=%s type=%s free=%d/%d",
		resp.Date, req.Type, len(resp.Available), len(domain.CandidateTimes))
	return resp, nil
}

func seriesFor(day time.Time, t types.TimeString, st domain.SessionType) ([]time.Time, error) {
	first, err := t.At(day, domain.LocalZone)
	if err != nil {
		return nil, err
	}
	return domain.SessionSeries(first, st), nil
}
