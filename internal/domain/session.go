package domain

import "time"

// SessionType is the kind of session a client books
type SessionType string

const (
	SessionSingle         SessionType = "avulsa"
	SessionMonthlyPackage SessionType = "pacote_mensal"
	SessionAnnualPackage  SessionType = "pacote_anual"
)

// PackageType distinguishes the two recurring package shapes
type PackageType string

const (
	PackageMonthly PackageType = "mensal"
	PackageAnnual  PackageType = "anual"
)

// Session counts per type. Packages repeat weekly on the same weekday and
// time of day.
const (
	MonthlyPackageSessions = 4
	AnnualPackageSessions  = 48
)

// ValidSessionType reports whether t is one of the known session types
func ValidSessionType(t SessionType) bool {
	switch t {
	case SessionSingle, SessionMonthlyPackage, SessionAnnualPackage:
		return true
	}
	return false
}

// IsPackage reports whether the type expands into multiple sessions
func (t SessionType) IsPackage() bool {
	return t == SessionMonthlyPackage || t == SessionAnnualPackage
}

// TotalSessions returns how many weekly sessions the type materializes into
func (t SessionType) TotalSessions() int {
	switch t {
	case SessionMonthlyPackage:
		return MonthlyPackageSessions
	case SessionAnnualPackage:
		return AnnualPackageSessions
	default:
		return 1
	}
}

// PackageTypeOf maps a package session type to its package shape. Returns ""
// for single sessions.
func (t SessionType) PackageTypeOf() PackageType {
	switch t {
	case SessionMonthlyPackage:
		return PackageMonthly
	case SessionAnnualPackage:
		return PackageAnnual
	default:
		return ""
	}
}

// SessionSeries generates the full list of instants a booking of type t
// anchored at first occupies: the anchor itself plus 7-day steps, one per
// session. For single sessions the series is just the anchor.
func SessionSeries(first time.Time, t SessionType) []time.Time {
	total := t.TotalSessions()
	series := make([]time.Time, 0, total)
	cursor := first
	for i := 0; i < total; i++ {
		series = append(series, cursor)
		cursor = cursor.AddDate(0, 0, 7)
	}
	return series
}
