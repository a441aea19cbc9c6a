package create_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient id is required", ErrInvalidInput)
	}
	if req.When.IsZero() {
		return fmt.Errorf("%w: date and time are required", ErrInvalidInput)
	}
	if !domain.ValidSessionType(req.Type) {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidInput, req.Type)
	}
	if !domain.IsWorkingDay(req.When.In(domain.LocalZone).Weekday()) {
		return fmt.Errorf("%w: %s is not a working day", ErrInvalidInput,
			req.When.In(domain.LocalZone).Format(domain.DateFormat))
	}
	if req.Installments < 0 || req.Installments > domain.MaxInstallments {
		return fmt.Errorf("%w: installments must be between 1 and %d", ErrInvalidInput, domain.MaxInstallments)
	}
	if req.Value != nil && *req.Value < 0 {
		return fmt.Errorf("%w: value must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
