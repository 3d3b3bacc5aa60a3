package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn     = errors.New("an open check-in already exists for today")
	ErrNoShiftConfigured    = errors.New("no shift configured for this employee category")
	ErrPresenceNotSatisfied = errors.New("presence requirement not satisfied")
	ErrNotCheckedIn         = errors.New("no open check-in found")
	ErrAlreadyCheckedOut    = errors.New("attendance already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidTimeRange   = errors.New("check-out must be after check-in")
)
