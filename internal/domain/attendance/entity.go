package attendance

import "time"

// Attendance is one punch record. A row with a nil CheckIn is an absence
// marker; a row with a CheckIn but nil CheckOut is an open shift. Multiple
// rows may exist per employee per day (multi-shift / OT punching).
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	CheckIn  *time.Time
	CheckOut *time.Time

	CheckInLocation    *string
	CheckOutLocation   *string
	CheckInSnapshotURL *string

	// Derived by the metrics calculator on check-out.
	DelayMinutes     int
	ExtraTimeMinutes int
	TotalHours       float64
	OTHours          float64

	// Once an administrator sets OT hours by hand, that value wins over
	// every future recomputation.
	OTManuallySet bool

	// Manual-edit audit trail.
	IsEdited bool
	Remark   *string
	EditedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses and background jobs
	EmployeeName     *string
	EmployeeCategory *string
	OrganizationID   *string
}

// IsOpen reports whether the record is an open shift awaiting check-out.
func (a Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

// IsAbsenceMarker reports whether the record marks an absence.
func (a Attendance) IsAbsenceMarker() bool {
	return a.CheckIn == nil && a.CheckOut == nil
}
