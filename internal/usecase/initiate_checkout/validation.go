package initiate_checkout

import (
	"fmt"
	"strings"

	"github.com/psicoagenda/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if !domain.ValidSessionType(req.SessionType) {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidInput, req.SessionType)
	}
	if req.When.IsZero() {
		return fmt.Errorf("%w: date and time are required", ErrInvalidInput)
	}
	local := req.When.In(domain.LocalZone)
	if !domain.IsWorkingDay(local.Weekday()) {
		return fmt.Errorf("%w: %s is not a working day", ErrInvalidInput, local.Format(domain.DateFormat))
	}
	if !isCandidateTime(local.Format(domain.TimeFormat)) {
		return fmt.Errorf("%w: %s is not an offerable time", ErrInvalidInput, local.Format(domain.TimeFormat))
	}
	if req.Installments < 0 || req.Installments > domain.MaxInstallments {
		return fmt.Errorf("%w: installments must be between 1 and %d", ErrInvalidInput, domain.MaxInstallments)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func isCandidateTime(hm string) bool {
	for _, t := range domain.CandidateTimes {
		if t.String() == hm {
			return true
		}
	}
	return false
}
