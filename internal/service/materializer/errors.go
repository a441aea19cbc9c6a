package materializer

import (
	"errors"
	"fmt"
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
)

var (
	ErrSchedulingConflict = errors.New("materializer: scheduling conflict")
	ErrInternal           = errors.New("materializer: internal error")
)

// ConflictError carries the first occupied instant of the series so callers
// can tell the user exactly which session collides.
type ConflictError struct {
	When time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("materializer: scheduling conflict at %s", e.When.In(domain.LocalZone).Format(domain.DateTimeFormat))
}

func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}
