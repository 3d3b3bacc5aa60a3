package attendance

import (
	"math"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
)

// DefaultMinOTMinutes is the smallest overrun past shift end that counts as
// overtime when no override is configured.
const DefaultMinOTMinutes = 15

// MetricsCalculator derives delay, extra time, total worked hours and
// overtime from a check-in/check-out pair and the shift catalog of the
// employee's category. It is pure arithmetic on already-fetched data.
type MetricsCalculator struct {
	minOTMinutes int
}

func NewMetricsCalculator(minOTMinutes int) *MetricsCalculator {
	if minOTMinutes <= 0 {
		minOTMinutes = DefaultMinOTMinutes
	}
	return &MetricsCalculator{minOTMinutes: minOTMinutes}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

// Compute derives the metrics for a closed punch. Preconditions: check-out
// strictly after check-in and at least one shift configured; anything else
// degrades to all-zero metrics rather than erroring, so a broken shift row
// or clock skew can never block closing a record.
func (c *MetricsCalculator) Compute(checkIn, checkOut time.Time, shifts []shift.Shift, isOTShift bool) attendance.Metrics {
	if !checkOut.After(checkIn) || len(shifts) == 0 {
		return attendance.Metrics{}
	}

	total := round2(checkOut.Sub(checkIn).Hours())
	if total < 0 {
		total = 0
	}

	if isOTShift {
		// An overtime-context punch is a second shift worked the same day;
		// the whole worked duration counts as overtime and the shift
		// boundaries do not apply.
		workedMins := roundMinutes(checkOut.Sub(checkIn))
		m := attendance.Metrics{TotalHours: total}
		if workedMins >= c.minOTMinutes {
			m.OTHours = round2(float64(workedMins) / 60)
		}
		return m
	}

	matched, ok := DetectShiftForTime(shifts, checkIn)
	if !ok {
		return attendance.Metrics{}
	}

	// Boundaries are anchored to the check-in's date; an overnight shift's
	// end lands on the next day.
	start, end := ShiftBoundsOn(matched.Shift, checkIn)

	delay := roundMinutes(checkIn.Sub(start))
	if delay < 0 {
		delay = 0
	}

	extra := roundMinutes(checkOut.Sub(end))
	if extra < 0 {
		extra = 0
	}

	var otHours float64
	graceAfter := time.Duration(matched.Shift.GraceAfterMinutes) * time.Minute
	if checkOut.After(end.Add(graceAfter)) {
		otMins := roundMinutes(checkOut.Sub(end))
		if otMins >= c.minOTMinutes {
			otHours = round2(float64(otMins) / 60)
		}
	}

	return attendance.Metrics{
		DelayMinutes:     delay,
		ExtraTimeMinutes: extra,
		TotalHours:       total,
		OTHours:          otHours,
	}
}

// ShiftHoursBreakdown is the reporting-side split of a closed punch into
// regular shift hours and an early-checkout shortfall.
type ShiftHoursBreakdown struct {
	RegularHours         float64
	EarlyCheckoutMinutes int
}

// RegularShiftHours derives the reporting breakdown: a checkout at or past
// shift end earns the full shift duration; an early checkout earns only the
// span from shift start to checkout and records the shortfall.
func (c *MetricsCalculator) RegularShiftHours(checkIn, checkOut time.Time, shifts []shift.Shift) ShiftHoursBreakdown {
	if !checkOut.After(checkIn) || len(shifts) == 0 {
		return ShiftHoursBreakdown{}
	}

	matched, ok := DetectShiftForTime(shifts, checkIn)
	if !ok {
		return ShiftHoursBreakdown{}
	}
	start, end := ShiftBoundsOn(matched.Shift, checkIn)

	if !checkOut.Before(end) {
		return ShiftHoursBreakdown{RegularHours: round2(end.Sub(start).Hours())}
	}

	regular := round2(checkOut.Sub(start).Hours())
	if regular < 0 {
		regular = 0
	}
	return ShiftHoursBreakdown{
		RegularHours:         regular,
		EarlyCheckoutMinutes: roundMinutes(end.Sub(checkOut)),
	}
}

// FinalTotalHours resolves the reported total for a closed record. The
// three-way branch is deliberate: a manually set OT value always wins over
// recalculation, auto-OT tops up the regular shift hours, and a plain punch
// reports the actual worked span.
func (c *MetricsCalculator) FinalTotalHours(rec attendance.Attendance, shifts []shift.Shift) float64 {
	if rec.CheckIn == nil || rec.CheckOut == nil || !rec.CheckOut.After(*rec.CheckIn) {
		return 0
	}

	actual := round2(rec.CheckOut.Sub(*rec.CheckIn).Hours())
	if actual < 0 {
		actual = 0
	}

	switch {
	case rec.OTManuallySet && rec.OTHours > 0:
		return round2(actual + rec.OTHours)
	case rec.OTHours > 0:
		breakdown := c.RegularShiftHours(*rec.CheckIn, *rec.CheckOut, shifts)
		return round2(breakdown.RegularHours + rec.OTHours)
	default:
		return actual
	}
}
