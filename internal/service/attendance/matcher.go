package attendance

import (
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/timeparse"
)

// DefaultGraceBeforeMinutes applies when a shift has no grace-before window
// configured and a check-in window check is requested.
const DefaultGraceBeforeMinutes = 30

// checkOutWindowMinutes is how long before shift end a plain check-out
// window opens.
const checkOutWindowMinutes = 30

// DetectedShift is the transient result of matching a punch against the
// shift catalog. It is never persisted.
type DetectedShift struct {
	Shift shift.Shift
	Index int
}

// ShiftBoundsOn materializes a shift's start and end as timestamps on the
// anchor's calendar date, in the anchor's location. When the end does not
// land strictly after the start the shift wraps midnight and the end moves
// to the next day. All boundary timestamps are anchored to the check-in
// event's date, never the check-out's.
func ShiftBoundsOn(s shift.Shift, anchor time.Time) (start, end time.Time) {
	startClock := timeparse.ParseLenient(s.StartTime)
	endClock := timeparse.ParseLenient(s.EndTime)

	start = time.Date(anchor.Year(), anchor.Month(), anchor.Day(),
		startClock.Hour, startClock.Minute, 0, 0, anchor.Location())
	end = time.Date(anchor.Year(), anchor.Month(), anchor.Day(),
		endClock.Hour, endClock.Minute, 0, 0, anchor.Location())

	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end
}

// CrossesMidnight reports whether the shift runs past midnight, i.e. its end
// time-of-day does not land strictly after its start.
func CrossesMidnight(s shift.Shift) bool {
	startMin := timeparse.ParseLenient(s.StartTime).MinutesOfDay()
	endMin := timeparse.ParseLenient(s.EndTime).MinutesOfDay()
	return endMin <= startMin
}

// DetectShiftForTime resolves the shift a timestamp falls into by plain
// [start, end) containment, walking the catalog in order. An overnight shift
// (end-of-day minutes below start minutes) contains a time when it is at or
// after the start or at or before the end. When no shift contains the time
// the first shift in the catalog is returned as a best-effort answer; the
// only true miss is an empty catalog.
func DetectShiftForTime(shifts []shift.Shift, t time.Time) (DetectedShift, bool) {
	if len(shifts) == 0 {
		return DetectedShift{}, false
	}

	tm := t.Hour()*60 + t.Minute()

	for i, s := range shifts {
		startMin := timeparse.ParseLenient(s.StartTime).MinutesOfDay()
		endMin := timeparse.ParseLenient(s.EndTime).MinutesOfDay()

		if endMin < startMin {
			// Overnight wrap: the window covers [start, midnight) plus
			// [midnight, end].
			if tm >= startMin || tm <= endMin {
				return DetectedShift{Shift: s, Index: i}, true
			}
			continue
		}

		if tm >= startMin && tm < endMin {
			return DetectedShift{Shift: s, Index: i}, true
		}
	}

	return DetectedShift{Shift: shifts[0], Index: 0}, true
}

// FindShiftForPunchWithGrace resolves the shift for a live punch. Each
// shift's window is widened by its grace periods: earliest is the start
// minus grace-before, latest is the (possibly next-day) end plus
// grace-after. The first shift whose widened window contains the punch wins;
// when none does, the containment match above decides.
func FindShiftForPunchWithGrace(shifts []shift.Shift, punch time.Time) (DetectedShift, bool) {
	if len(shifts) == 0 {
		return DetectedShift{}, false
	}

	for i, s := range shifts {
		start, end := ShiftBoundsOn(s, punch)
		earliest := start.Add(-time.Duration(s.GraceBeforeMinutes) * time.Minute)
		latest := end.Add(time.Duration(s.GraceAfterMinutes) * time.Minute)

		if !punch.Before(earliest) && !punch.After(latest) {
			return DetectedShift{Shift: s, Index: i}, true
		}
	}

	return DetectShiftForTime(shifts, punch)
}

// IsWithinCheckInWindow reports whether a punch is acceptable as a check-in
// for the shift: from start minus grace-before (default 30 minutes when the
// shift has none configured) through shift end inclusive.
func IsWithinCheckInWindow(s shift.Shift, punch time.Time) bool {
	start, end := ShiftBoundsOn(s, punch)

	grace := s.GraceBeforeMinutes
	if grace <= 0 {
		grace = DefaultGraceBeforeMinutes
	}
	earliest := start.Add(-time.Duration(grace) * time.Minute)

	return !punch.Before(earliest) && !punch.After(end)
}

// IsWithinCheckOutWindow reports whether a punch is acceptable as a plain
// check-out for the shift: within the last 30 minutes before shift end
// through shift end inclusive.
func IsWithinCheckOutWindow(s shift.Shift, punch time.Time) bool {
	_, end := ShiftBoundsOn(s, punch)
	earliest := end.Add(-checkOutWindowMinutes * time.Minute)

	return !punch.Before(earliest) && !punch.After(end)
}
