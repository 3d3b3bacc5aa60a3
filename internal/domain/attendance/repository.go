package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpenRecord returns the newest record for the employee on the given
	// date that has a check-in but no check-out, or nil when none exists.
	GetOpenRecord(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// GetLatestOpen returns the employee's newest open record regardless of
	// date. Check-out goes through this so an overnight shift can close
	// after midnight against the previous day's record.
	GetLatestOpen(ctx context.Context, employeeID string) (*Attendance, error)

	// CloseIfOpen sets check-out and the derived metrics only when the
	// record still has a nil check-out. Returns false when the record was
	// already closed by a concurrent writer; both the punch path and the
	// sweeper go through this so their race stays benign.
	CloseIfOpen(ctx context.Context, id string, checkOut time.Time, metrics Metrics, location *string) (bool, error)

	Update(ctx context.Context, attendance Attendance) error

	// ListOpenRecords returns every record across employees with a check-in
	// and no check-out, joined with the employee's category. Sweeper input.
	ListOpenRecords(ctx context.Context) ([]Attendance, error)

	// CountForEmployeeOnDate returns how many records of any kind exist for
	// the employee on the given date.
	CountForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) (int, error)

	// HasCheckInOnDate reports whether any record for the employee on the
	// date carries a non-nil check-in.
	HasCheckInOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// HasAbsenceMarker reports whether a null/null placeholder already
	// exists for the employee on the date. Idempotence guard for the
	// absence marker.
	HasAbsenceMarker(ctx context.Context, employeeID string, date time.Time) (bool, error)

	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	Delete(ctx context.Context, id string) error
}

// Filter narrows attendance listings.
type Filter struct {
	EmployeeID string
	Category   string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}
