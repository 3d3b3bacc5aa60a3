package attendance

import (
	"testing"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/stretchr/testify/assert"
)

func TestCompute_GraceScenario(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()} // 09:00-17:00, grace 15/30

	checkIn := at(8, 50)
	checkOut := at(17, 45)

	m := calc.Compute(checkIn, checkOut, shifts, false)

	// Early check-in clamps delay to zero, never negative.
	assert.Equal(t, 0, m.DelayMinutes)
	assert.Equal(t, 45, m.ExtraTimeMinutes)
	// 45 minutes past end clears grace-after (30) and MIN_OT (15).
	assert.InDelta(t, 0.75, m.OTHours, 0.001)
	assert.InDelta(t, 8.92, m.TotalHours, 0.001)
}

func TestCompute_LateCheckIn(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	m := calc.Compute(at(9, 20), at(17, 0), shifts, false)

	assert.Equal(t, 20, m.DelayMinutes)
	assert.Equal(t, 0, m.ExtraTimeMinutes)
	assert.Equal(t, 0.0, m.OTHours)
}

func TestCompute_OvernightShift(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{{ID: "night", StartTime: "22:00", EndTime: "06:00"}}

	checkIn := at(23, 30)                                     // day D
	checkOut := time.Date(2026, 8, 29, 6, 10, 0, 0, time.UTC) // day D+1

	m := calc.Compute(checkIn, checkOut, shifts, false)

	// Shift end anchors to the check-in's date, so it lands on D+1 06:00.
	assert.InDelta(t, 6.67, m.TotalHours, 0.001)
	assert.Equal(t, 10, m.ExtraTimeMinutes)
	// 10 minutes past end is below MIN_OT.
	assert.Equal(t, 0.0, m.OTHours)
	assert.Equal(t, 90, m.DelayMinutes)
}

func TestCompute_InvertedRangeIsZero(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	assert.True(t, calc.Compute(at(17, 0), at(9, 0), shifts, false).Zero())
	assert.True(t, calc.Compute(at(9, 0), at(9, 0), shifts, false).Zero())
}

func TestCompute_EmptyCatalogIsZero(t *testing.T) {
	calc := NewMetricsCalculator(15)
	assert.True(t, calc.Compute(at(9, 0), at(17, 0), nil, false).Zero())
}

func TestCompute_OTBelowMinimumNotCounted(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{{StartTime: "09:00", EndTime: "17:00", GraceAfterMinutes: 0}}

	// 10 minutes over with no grace clears eligibility but not MIN_OT.
	m := calc.Compute(at(9, 0), at(17, 10), shifts, false)
	assert.Equal(t, 10, m.ExtraTimeMinutes)
	assert.Equal(t, 0.0, m.OTHours)
}

func TestCompute_OTContextPunch(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	// A second punch of the day worked as overtime: the whole span is OT.
	m := calc.Compute(at(18, 0), at(20, 0), shifts, true)

	assert.Equal(t, 0, m.DelayMinutes)
	assert.Equal(t, 0, m.ExtraTimeMinutes)
	assert.InDelta(t, 2.0, m.TotalHours, 0.001)
	assert.InDelta(t, 2.0, m.OTHours, 0.001)
}

func TestRegularShiftHours(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	// Checkout past end earns the full shift duration.
	b := calc.RegularShiftHours(at(9, 0), at(18, 0), shifts)
	assert.InDelta(t, 8.0, b.RegularHours, 0.001)
	assert.Equal(t, 0, b.EarlyCheckoutMinutes)

	// Early checkout earns only the worked span and records the shortfall.
	b = calc.RegularShiftHours(at(9, 0), at(16, 0), shifts)
	assert.InDelta(t, 7.0, b.RegularHours, 0.001)
	assert.Equal(t, 60, b.EarlyCheckoutMinutes)
}

func TestFinalTotalHours_ManualOTAlwaysWins(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	checkIn := at(9, 0)
	checkOut := at(17, 0)
	rec := attendance.Attendance{
		CheckIn:       &checkIn,
		CheckOut:      &checkOut,
		OTHours:       2.5,
		OTManuallySet: true,
	}

	// Actual worked span (8h) plus the administrator's OT, regardless of
	// what auto-calculation would produce.
	assert.InDelta(t, 10.5, calc.FinalTotalHours(rec, shifts), 0.001)
}

func TestFinalTotalHours_AutoOTTopsUpRegularHours(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	checkIn := at(9, 0)
	checkOut := at(18, 0)
	rec := attendance.Attendance{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		OTHours:  1.0,
	}

	// Regular shift hours (8) + auto OT (1).
	assert.InDelta(t, 9.0, calc.FinalTotalHours(rec, shifts), 0.001)
}

func TestFinalTotalHours_PlainPunch(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	checkIn := at(9, 30)
	checkOut := at(16, 30)
	rec := attendance.Attendance{CheckIn: &checkIn, CheckOut: &checkOut}

	assert.InDelta(t, 7.0, calc.FinalTotalHours(rec, shifts), 0.001)
}

func TestMetricsNeverNegative(t *testing.T) {
	calc := NewMetricsCalculator(15)
	shifts := []shift.Shift{dayShift()}

	for hour := 0; hour < 24; hour++ {
		m := calc.Compute(at(hour, 0), at(hour, 30), shifts, false)
		assert.GreaterOrEqual(t, m.DelayMinutes, 0)
		assert.GreaterOrEqual(t, m.ExtraTimeMinutes, 0)
		assert.GreaterOrEqual(t, m.TotalHours, 0.0)
		assert.GreaterOrEqual(t, m.OTHours, 0.0)
	}
}
