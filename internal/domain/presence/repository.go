package presence

import (
	"context"
	"time"
)

// DetectionRepository defines data access for presence-detection samples.
type DetectionRepository interface {
	// Record appends a detection sample. No validation is applied.
	Record(ctx context.Context, detection Detection) error

	// ListSince returns the employee's detections on the given date with
	// detection_time >= since, ordered newest-first.
	ListSince(ctx context.Context, employeeID string, date time.Time, since time.Time) ([]Detection, error)

	// PurgeOlderThan removes samples past the retention window and returns
	// the number of rows deleted.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service validates that a punch is backed by enough recent detections to
// reject spoofed single-frame matches.
type Service interface {
	RecordDetection(ctx context.Context, employeeID string, at time.Time) error
	IsSatisfied(ctx context.Context, employeeID string, date time.Time, thresholds Thresholds) bool
}
