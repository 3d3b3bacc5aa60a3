package response

import (
	"errors"
	"net/http"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/auth"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/organization"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee already has an open check-in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance record is already closed")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Employee has no open check-in", nil)
	case errors.Is(err, attendance.ErrNoShiftConfigured):
		BadRequest(w, "No shift configured for this employee", nil)
	case errors.Is(err, attendance.ErrPresenceNotSatisfied):
		BadRequest(w, "Presence detections do not satisfy the shift's thresholds", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		BadRequest(w, "Check-out must be after check-in", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
