package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/presence"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/events"
	"github.com/ashishu703/facial-attendence-backend/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	shift.ShiftRepository
	presenceSvc presence.Service
	calculator  *MetricsCalculator
	fileService file.FileService
	bus         *events.Bus
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	presenceSvc presence.Service,
	calculator *MetricsCalculator,
	fileService file.FileService,
	bus *events.Bus,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		ShiftRepository:      shiftRepo,
		presenceSvc:          presenceSvc,
		calculator:           calculator,
		fileService:          fileService,
		bus:                  bus,
	}
}

func organizationIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}
	return organizationID, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.AttendanceService. The employee has already
// been identified by the external face-recognition capability; this path
// resolves the shift, enforces the presence debounce when the shift demands
// it, and opens the record.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if emp.OrganizationID != organizationID {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	open, err := a.AttendanceRepository.GetOpenRecord(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up open record: %w", err)
	}
	if open != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	shifts, err := a.ShiftRepository.ListByCategory(ctx, organizationID, emp.Category)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load shift catalog: %w", err)
	}
	if len(shifts) == 0 {
		return attendance.AttendanceResponse{}, attendance.ErrNoShiftConfigured
	}

	matched, ok := FindShiftForPunchWithGrace(shifts, now)
	if !ok {
		return attendance.AttendanceResponse{}, attendance.ErrNoShiftConfigured
	}

	if matched.Shift.PresenceEnforced() {
		satisfied := a.presenceSvc.IsSatisfied(ctx, emp.ID, today, presence.Thresholds{
			PresenceTimeSeconds:   matched.Shift.PresenceTimeSeconds,
			PresenceCount:         matched.Shift.PresenceCount,
			PresenceWindowSeconds: matched.Shift.PresenceWindowSeconds,
		})
		if !satisfied {
			return attendance.AttendanceResponse{}, attendance.ErrPresenceNotSatisfied
		}
	}

	if req.File != nil && req.FileHeader != nil {
		snapshotURL, err := a.fileService.UploadSnapshot(ctx, emp.ID, today, req.File, req.FileHeader.Filename)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to store check-in snapshot: %w", err)
		}
		req.SnapshotURL = &snapshotURL
	}

	data := attendance.Attendance{
		EmployeeID:         emp.ID,
		Date:               today,
		CheckIn:            &now,
		CheckInLocation:    req.Location,
		CheckInSnapshotURL: req.SnapshotURL,
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	a.bus.Publish(events.Event{
		Type:       "attendance_check_in",
		EmployeeID: emp.ID,
		Data: map[string]interface{}{
			"attendance_id": created.ID,
			"shift":         matched.Shift.Name,
			"date":          today.Format("2006-01-02"),
		},
	})

	created.EmployeeName = &emp.FullName
	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. The newest open record
// is closed conditionally so a racing sweeper close stays benign.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if emp.OrganizationID != organizationID {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
	}

	open, err := a.AttendanceRepository.GetLatestOpen(ctx, emp.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up open record: %w", err)
	}
	if open == nil || open.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	now := time.Now().UTC()

	shifts, err := a.ShiftRepository.ListByCategory(ctx, organizationID, emp.Category)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load shift catalog: %w", err)
	}

	metrics := a.calculator.Compute(*open.CheckIn, now, shifts, req.IsOTShift)

	closed, err := a.AttendanceRepository.CloseIfOpen(ctx, open.ID, now, metrics, req.Location)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}
	if !closed {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	a.bus.Publish(events.Event{
		Type:       "attendance_check_out",
		EmployeeID: emp.ID,
		Data: map[string]interface{}{
			"attendance_id": open.ID,
			"total_hours":   metrics.TotalHours,
			"ot_hours":      metrics.OTHours,
		},
	})

	updated, err := a.AttendanceRepository.GetByID(ctx, open.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}
	return mapAttendanceToResponse(updated), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return mapAttendanceToResponse(att), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// Update implements attendance.AttendanceService. This is the administrative
// edit surface; setting OT hours flips the manual override that wins over
// every later recomputation.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckInTime != nil && *req.CheckInTime != "" {
		if parsed, perr := parseEditTimestamp(*req.CheckInTime, att.Date); perr == nil {
			att.CheckIn = &parsed
		}
	}
	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		if parsed, perr := parseEditTimestamp(*req.CheckOutTime, att.Date); perr == nil {
			att.CheckOut = &parsed
		}
	}
	if att.CheckIn != nil && att.CheckOut != nil && !att.CheckOut.After(*att.CheckIn) {
		// Overnight records need a full check-out datetime; a bare time of
		// day lands on the check-in's date.
		return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeRange
	}
	if req.OTHours != nil {
		att.OTHours = *req.OTHours
		att.OTManuallySet = true
	}
	if req.Remark != nil {
		att.Remark = req.Remark
	}

	now := time.Now().UTC()
	att.IsEdited = true
	att.EditedAt = &now

	// Recompute derived fields when the record is closed.
	if att.CheckIn != nil && att.CheckOut != nil {
		category := ""
		if att.EmployeeCategory != nil {
			category = *att.EmployeeCategory
		}
		shifts, serr := a.ShiftRepository.ListByCategory(ctx, organizationID, category)
		if serr == nil {
			metrics := a.calculator.Compute(*att.CheckIn, *att.CheckOut, shifts, false)
			att.DelayMinutes = metrics.DelayMinutes
			att.ExtraTimeMinutes = metrics.ExtraTimeMinutes
			if !att.OTManuallySet {
				att.OTHours = metrics.OTHours
			}
			att.TotalHours = a.calculator.FinalTotalHours(att, shifts)
		}
	}

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}
	return mapAttendanceToResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// parseEditTimestamp accepts either a full datetime or a bare time of day
// combined with the record's date.
func parseEditTimestamp(value string, date time.Time) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		t, err = time.Parse("15:04", value)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var employeeName string
	if att.EmployeeName != nil {
		employeeName = *att.EmployeeName
	}

	return attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		EmployeeName:     employeeName,
		Date:             att.Date.Format("2006-01-02"),
		CheckInTime:      timePtrToString(att.CheckIn),
		CheckOutTime:     timePtrToString(att.CheckOut),
		CheckInLocation:  att.CheckInLocation,
		CheckOutLocation: att.CheckOutLocation,
		SnapshotURL:      att.CheckInSnapshotURL,
		DelayMinutes:     att.DelayMinutes,
		ExtraTimeMinutes: att.ExtraTimeMinutes,
		TotalHours:       att.TotalHours,
		OTHours:          att.OTHours,
		IsAbsent:         att.IsAbsenceMarker(),
		IsEdited:         att.IsEdited,
		Remark:           att.Remark,
	}
}
