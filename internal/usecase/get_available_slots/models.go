package get_available_slots

import (
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/pkg/types"
)

// Request asks which candidate times on Date can host the first session of a
// booking of the given type.
type Request struct {
	Date time.Time // calendar day, interpreted in the practice's zone
	Type domain.SessionType
}

// Slot is one candidate time with its verdict
type Slot struct {
	Time      types.TimeString `json:"horario"`
	Available bool             `json:"disponivel"`
}

// Response lists every candidate time of the day. A time is available only if
// the whole weekly series starting there is free.
type Response struct {
	Date          string             `json:"data"`
	SessionType   string             `json:"tipoSessao"`
	TotalSessions int                `json:"totalSessoes"`
	Slots         []Slot             `json:"horarios"`
	Available     []types.TimeString `json:"disponiveis"`
}
