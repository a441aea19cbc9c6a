package domain

import (
	"time"

	"github.com/psicoagenda/booking-service/pkg/types"
)

// The practice works in a single fixed offset. Wall-clock correctness across
// DST transitions is explicitly out of scope.
var LocalZone = time.FixedZone("-03:00", -3*60*60)

// CandidateTimes are the offerable session start times on a working day, in
// order. The availability templates stored per weekday are descriptive; this
// list is the source of truth for the catalog.
var CandidateTimes = []types.TimeString{"18:00", "19:00", "20:30"}

// Session and format constants
const (
	SessionDurationMinutes = 60

	TimeFormat     = "15:04"
	DateFormat     = "2006-01-02"
	DateTimeFormat = "02/01/2006 15:04"
)

// Validation limits
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxInstallments             = 12
)

// IsWorkingDay reports whether the practice attends on the given weekday.
// Weekends are never offered.
func IsWorkingDay(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

// InactiveStatuses are excluded when computing occupancy
var InactiveStatuses = []BookingStatus{StatusCancelled}
