package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalSessions(t *testing.T) {
	assert.Equal(t, 1, SessionSingle.TotalSessions())
	assert.Equal(t, 4, SessionMonthlyPackage.TotalSessions())
	assert.Equal(t, 48, SessionAnnualPackage.TotalSessions())
}

func TestPackageTypeOf(t *testing.T) {
	assert.Equal(t, PackageMonthly, SessionMonthlyPackage.PackageTypeOf())
	assert.Equal(t, PackageAnnual, SessionAnnualPackage.PackageTypeOf())
	assert.Equal(t, PackageType(""), SessionSingle.PackageTypeOf())
}

func TestSessionSeries_WeeklySteps(t *testing.T) {
	first := time.Date(2026, time.January, 5, 19, 0, 0, 0, LocalZone)

	series := SessionSeries(first, SessionMonthlyPackage)
	require.Len(t, series, 4)
	for i, when := range series {
		assert.Equal(t, first.AddDate(0, 0, 7*i), when)
		assert.Equal(t, first.Weekday(), when.Weekday())
		assert.Equal(t, 19, when.Hour())
	}
}

func TestSessionSeries_SingleIsJustAnchor(t *testing.T) {
	first := time.Date(2026, time.January, 5, 18, 0, 0, 0, LocalZone)
	series := SessionSeries(first, SessionSingle)
	require.Len(t, series, 1)
	assert.Equal(t, first, series[0])
}

func TestSessionSeries_AnnualCrossesYear(t *testing.T) {
	first := time.Date(2026, time.November, 2, 20, 30, 0, 0, LocalZone)
	series := SessionSeries(first, SessionAnnualPackage)
	require.Len(t, series, 48)

	last := series[47]
	assert.Equal(t, 2027, last.Year())
	assert.Equal(t, first.AddDate(0, 0, 7*47), last)
	assert.Equal(t, time.Monday, last.Weekday())
}

func TestIsWorkingDay(t *testing.T) {
	assert.True(t, IsWorkingDay(time.Monday))
	assert.True(t, IsWorkingDay(time.Friday))
	assert.False(t, IsWorkingDay(time.Saturday))
	assert.False(t, IsWorkingDay(time.Sunday))
}

func TestValidSessionType(t *testing.T) {
	assert.True(t, ValidSessionType(SessionSingle))
	assert.True(t, ValidSessionType(SessionMonthlyPackage))
	assert.True(t, ValidSessionType(SessionAnnualPackage))
	assert.False(t, ValidSessionType("quinzenal"))
}
