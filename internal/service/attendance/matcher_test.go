package attendance

import (
	"testing"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayShift() shift.Shift {
	return shift.Shift{
		ID:                 "day",
		Name:               "Day",
		StartTime:          "09:00",
		EndTime:            "17:00",
		GraceBeforeMinutes: 15,
		GraceAfterMinutes:  30,
	}
}

func nightShift() shift.Shift {
	return shift.Shift{
		ID:                 "night",
		Name:               "Night",
		StartTime:          "22:00",
		EndTime:            "06:00",
		GraceBeforeMinutes: 15,
		GraceAfterMinutes:  30,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 8, 28, hour, min, 0, 0, time.UTC)
}

func TestDetectShiftForTime_Containment(t *testing.T) {
	shifts := []shift.Shift{dayShift()}

	matched, ok := DetectShiftForTime(shifts, at(10, 0))
	require.True(t, ok)
	assert.Equal(t, "day", matched.Shift.ID)
	assert.Equal(t, 0, matched.Index)

	// End boundary is exclusive.
	matched, ok = DetectShiftForTime(shifts, at(17, 0))
	require.True(t, ok)
	assert.Equal(t, "day", matched.Shift.ID) // fallback to first
}

func TestDetectShiftForTime_Overnight(t *testing.T) {
	shifts := []shift.Shift{nightShift()}

	// Just after start.
	matched, ok := DetectShiftForTime(shifts, at(22, 5))
	require.True(t, ok)
	assert.Equal(t, "night", matched.Shift.ID)

	// Just before end-of-day wrap.
	matched, ok = DetectShiftForTime(shifts, at(23, 59))
	require.True(t, ok)
	assert.Equal(t, "night", matched.Shift.ID)

	// After midnight, before shift end.
	matched, ok = DetectShiftForTime(shifts, at(5, 30))
	require.True(t, ok)
	assert.Equal(t, "night", matched.Shift.ID)
}

func TestDetectShiftForTime_FallbackToFirst(t *testing.T) {
	shifts := []shift.Shift{dayShift(), {ID: "evening", StartTime: "18:00", EndTime: "21:00"}}

	// 03:00 matches neither window; first shift wins by policy.
	matched, ok := DetectShiftForTime(shifts, at(3, 0))
	require.True(t, ok)
	assert.Equal(t, "day", matched.Shift.ID)
	assert.Equal(t, 0, matched.Index)
}

func TestDetectShiftForTime_EmptyCatalog(t *testing.T) {
	_, ok := DetectShiftForTime(nil, at(10, 0))
	assert.False(t, ok)
}

func TestFindShiftForPunchWithGrace(t *testing.T) {
	shifts := []shift.Shift{dayShift()}

	// 08:50 is within grace-before (09:00 - 15m).
	matched, ok := FindShiftForPunchWithGrace(shifts, at(8, 50))
	require.True(t, ok)
	assert.Equal(t, "day", matched.Shift.ID)

	// 17:25 is within grace-after (17:00 + 30m).
	matched, ok = FindShiftForPunchWithGrace(shifts, at(17, 25))
	require.True(t, ok)
	assert.Equal(t, "day", matched.Shift.ID)

	// 08:40 is before the grace window; containment fallback still answers.
	matched, ok = FindShiftForPunchWithGrace(shifts, at(8, 40))
	require.True(t, ok)
	assert.Equal(t, "day", matched.Shift.ID)
}

func TestFindShiftForPunchWithGrace_PrefersMatchingWindow(t *testing.T) {
	shifts := []shift.Shift{
		{ID: "morning", StartTime: "06:00", EndTime: "14:00"},
		{ID: "evening", StartTime: "14:00", EndTime: "22:00", GraceBeforeMinutes: 30},
	}

	matched, ok := FindShiftForPunchWithGrace(shifts, at(15, 0))
	require.True(t, ok)
	assert.Equal(t, "evening", matched.Shift.ID)
	assert.Equal(t, 1, matched.Index)
}

func TestShiftBoundsOn_OvernightAdvancesEnd(t *testing.T) {
	anchor := at(23, 30)
	start, end := ShiftBoundsOn(nightShift(), anchor)

	assert.Equal(t, at(22, 0), start)
	assert.Equal(t, time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC), end)
	assert.True(t, end.After(start))
}

func TestIsWithinCheckInWindow(t *testing.T) {
	s := dayShift()

	assert.True(t, IsWithinCheckInWindow(s, at(8, 50)))
	assert.True(t, IsWithinCheckInWindow(s, at(17, 0)))  // end inclusive
	assert.False(t, IsWithinCheckInWindow(s, at(8, 40))) // before grace
	assert.False(t, IsWithinCheckInWindow(s, at(17, 1)))

	// Default grace applies when none configured.
	noGrace := shift.Shift{StartTime: "09:00", EndTime: "17:00"}
	assert.True(t, IsWithinCheckInWindow(noGrace, at(8, 31)))
	assert.False(t, IsWithinCheckInWindow(noGrace, at(8, 29)))
}

func TestIsWithinCheckOutWindow(t *testing.T) {
	s := dayShift()

	assert.True(t, IsWithinCheckOutWindow(s, at(16, 31)))
	assert.True(t, IsWithinCheckOutWindow(s, at(17, 0)))
	assert.False(t, IsWithinCheckOutWindow(s, at(16, 29)))
	assert.False(t, IsWithinCheckOutWindow(s, at(17, 1)))
}

func TestCrossesMidnight(t *testing.T) {
	assert.False(t, CrossesMidnight(shift.Shift{StartTime: "09:00", EndTime: "17:00"}))
	assert.True(t, CrossesMidnight(shift.Shift{StartTime: "22:00", EndTime: "06:00"}))
	assert.True(t, CrossesMidnight(shift.Shift{StartTime: "10:00 PM", EndTime: "6:00 AM"}))
	// A degenerate equal pair wraps to a full day.
	assert.True(t, CrossesMidnight(shift.Shift{StartTime: "08:00", EndTime: "08:00"}))
}
