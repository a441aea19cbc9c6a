package get_available_slots

import (
	"fmt"

	"github.com/psicoagenda/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !domain.ValidSessionType(req.Type) {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidInput, req.Type)
	}
	return nil
}
