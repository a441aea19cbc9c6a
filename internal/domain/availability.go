package domain

import (
	"time"

	"github.com/psicoagenda/booking-service/pkg/types"
)

// DayStatus classifies a calendar day for client-side rendering
type DayStatus string

const (
	DayFree    DayStatus = "full"    // every candidate time free
	DayPartial DayStatus = "partial" // some candidate times occupied
	DayNone    DayStatus = "none"    // nothing offerable (fully booked or non-working day)
)

// DayAvailability is the per-day rollup produced by the calendar aggregator
type DayAvailability struct {
	Status        DayStatus
	OccupiedCount int
	FreeCount     int
}

// AvailabilityWindow is one offerable window inside a weekday template
type AvailabilityWindow struct {
	Start  types.TimeString
	End    types.TimeString
	Active bool
}

// AvailabilityTemplate describes which times are nominally offerable on a
// weekday. It seeds and documents the schedule; the slot catalog still reads
// CandidateTimes directly.
type AvailabilityTemplate struct {
	ID        int64
	Weekday   time.Weekday
	Windows   []AvailabilityWindow
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
