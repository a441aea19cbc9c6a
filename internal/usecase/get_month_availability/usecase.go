package get_month_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// UseCase rolls a month of bookings up into a per-day status for the booking
// calendar. Only candidate times count towards occupancy; a booking at some
// other instant never shrinks the offerable set.
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
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	monthStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, domain.LocalZone)
	monthEnd := monthStart.AddDate(0, 1, 0)

	active, err := uc.bookingRepo.ListActiveBetween(ctx, monthStart, monthEnd)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetMonthAvailability - list active: %v", ErrInternal, err)
	}

	// Count occupied candidate times per local day
	occupied := make(map[string]int)
	for _, b := range active {
		local := b.When.In(domain.LocalZone)
		if !isCandidateTime(local) {
			continue
		}
		occupied[local.Format(domain.DateFormat)]++
	}

	resp := &Response{
		Year:  req.Year,
		Month: req.Month,
		Days:  make(map[string]DayEntry),
	}
	total := len(domain.CandidateTimes)
	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DateFormat)
		resp.Days[key] = toEntry(summarize(day.Weekday(), occupied[key], total))
	}

	uc.logger.Info("GetMonthAvailability: year=%d month=%d days=%d", req.Year, req.Month, len(resp.Days))
	return resp, nil
}

func validateRequest(req *Request) error {
	if req.Year < 2000 || req.Year > 2100 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidInput, req.Year)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidInput, req.Month)
	}
	return nil
}

func isCandidateTime(local time.Time) bool {
	hm := local.Format(domain.TimeFormat)
	for _, t := range domain.CandidateTimes {
		if t.String() == hm {
			return true
		}
	}
	return false
}

func summarize(weekday time.Weekday, occupied, total int) domain.DayAvailability {
	if !domain.IsWorkingDay(weekday) {
		return domain.DayAvailability{Status: domain.DayNone}
	}
	free := total - occupied
	switch {
	case occupied == 0:
		return domain.DayAvailability{Status: domain.DayFree, FreeCount: free}
	case free <= 0:
		return domain.DayAvailability{Status: domain.DayNone, OccupiedCount: occupied}
	default:
		return domain.DayAvailability{Status: domain.DayPartial, OccupiedCount: occupied, FreeCount: free}
	}
}

func toEntry(d domain.DayAvailability) DayEntry {
	return DayEntry{
		Status:   string(d.Status),
		Occupied: d.OccupiedCount,
		Free:     d.FreeCount,
	}
}
