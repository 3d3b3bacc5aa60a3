package presence

import "time"

// Detection is a single face-detection sample streamed in by the recognition
// capability. Samples are append-only and pruned after a retention window.
type Detection struct {
	ID            string
	EmployeeID    string
	DetectionTime time.Time
	Date          time.Time
	CreatedAt     time.Time
}

// Thresholds are the debounce requirements carried by a shift definition.
type Thresholds struct {
	PresenceTimeSeconds   int
	PresenceCount         int
	PresenceWindowSeconds int
}
