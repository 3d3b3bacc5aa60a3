package attendance

import (
	"context"
	"mime/multipart"

	"github.com/ashishu703/facial-attendence-backend/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest is a punch forwarded by the face-recognition capability
// once it has identified the employee. The snapshot is optional evidence.
type CheckInRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Location    *string `json:"location"`
	SnapshotURL *string `json:"-"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.FileHeader != nil {
		if !validator.IsAllowedImage(r.FileHeader.Filename) {
			errs = append(errs, validator.ValidationError{
				Field:   "snapshot",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "snapshot",
				Message: "snapshot size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Location   *string `json:"location"`

	// IsOTShift marks a punch made in an overtime context, i.e. a second
	// shift worked the same day.
	IsOTShift bool `json:"is_ot_shift"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest is the administrative edit surface. Setting OTHours flips
// the manual-override flag so future recomputations keep the value.
type UpdateRequest struct {
	ID           string   `json:"-"`
	CheckInTime  *string  `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	OTHours      *float64 `json:"ot_hours"`
	Remark       *string  `json:"remark"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.OTHours != nil && *r.OTHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_hours",
			Message: "ot_hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	Date             string  `json:"date"`
	CheckInTime      *string `json:"check_in_time"`
	CheckOutTime     *string `json:"check_out_time"`
	CheckInLocation  *string `json:"check_in_location"`
	CheckOutLocation *string `json:"check_out_location"`
	SnapshotURL      *string `json:"snapshot_url,omitempty"`
	DelayMinutes     int     `json:"delay_minutes"`
	ExtraTimeMinutes int     `json:"extra_time_minutes"`
	TotalHours       float64 `json:"total_hours"`
	OTHours          float64 `json:"ot_hours"`
	IsAbsent         bool    `json:"is_absent"`
	IsEdited         bool    `json:"is_edited"`
	Remark           *string `json:"remark,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// AttendanceService is the punch and administration surface consumed by the
// HTTP layer.
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter Filter) (ListAttendanceResponse, error)
	Update(ctx context.Context, req UpdateRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}
