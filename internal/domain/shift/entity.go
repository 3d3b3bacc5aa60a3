package shift

import (
	"sort"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/pkg/timeparse"
)

// Shift is a configured working window for an employee category. Start and
// end are stored as times of day with no date; an end that sorts before the
// start denotes a shift crossing midnight.
type Shift struct {
	ID             string
	OrganizationID string
	Name           string
	Category       string
	StartTime      string // "HH:MM" or 12-hour form, normalized by timeparse
	EndTime        string

	// Punch tolerance around the shift boundaries, in minutes.
	GraceBeforeMinutes int
	GraceAfterMinutes  int

	// Presence-debounce thresholds. All zero means the debounce check is
	// not enforced for this shift.
	PresenceTimeSeconds   int
	PresenceCount         int
	PresenceWindowSeconds int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PresenceEnforced reports whether check-ins against this shift must be
// backed by recent face detections.
func (s Shift) PresenceEnforced() bool {
	return s.PresenceCount > 0 || s.PresenceTimeSeconds > 0
}

// SortByStartTime orders shifts by parsed start time ascending. A start time
// that fails to parse sorts as midnight. The matcher's first-shift fallback
// depends on this ordering.
func SortByStartTime(shifts []Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		a := timeparse.ParseLenient(shifts[i].StartTime)
		b := timeparse.ParseLenient(shifts[j].StartTime)
		return a.MinutesOfDay() < b.MinutesOfDay()
	})
}
