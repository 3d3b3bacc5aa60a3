package attendance

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/presence"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/events"
)

type stubAttendanceRepo struct {
	records     map[string]*attendance.Attendance
	updateCalls int
}

func (s *stubAttendanceRepo) Create(_ context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	return rec, nil
}

func (s *stubAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	if rec, ok := s.records[id]; ok {
		return *rec, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) GetOpenRecord(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) GetLatestOpen(_ context.Context, _ string) (*attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) CloseIfOpen(_ context.Context, _ string, _ time.Time, _ attendance.Metrics, _ *string) (bool, error) {
	return false, nil
}

func (s *stubAttendanceRepo) Update(_ context.Context, rec attendance.Attendance) error {
	s.updateCalls++
	s.records[rec.ID] = &rec
	return nil
}

func (s *stubAttendanceRepo) ListOpenRecords(_ context.Context) ([]attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) CountForEmployeeOnDate(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func (s *stubAttendanceRepo) HasCheckInOnDate(_ context.Context, _ string, _ time.Time) (bool, error) {
	return false, nil
}

func (s *stubAttendanceRepo) HasAbsenceMarker(_ context.Context, _ string, _ time.Time) (bool, error) {
	return false, nil
}

func (s *stubAttendanceRepo) List(_ context.Context, _ attendance.Filter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (s *stubAttendanceRepo) Delete(_ context.Context, _ string) error { return nil }

type stubEmployeeRepo struct{}

func (stubEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (stubEmployeeRepo) GetByID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (stubEmployeeRepo) List(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (stubEmployeeRepo) ListActiveByCategory(_ context.Context, _ string, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (stubEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }
func (stubEmployeeRepo) Delete(_ context.Context, _ string) error            { return nil }

type stubShiftRepo struct {
	shifts []shift.Shift
}

func (s *stubShiftRepo) Create(_ context.Context, sh shift.Shift) (shift.Shift, error) {
	return sh, nil
}

func (s *stubShiftRepo) GetByID(_ context.Context, _ string, _ string) (shift.Shift, error) {
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (s *stubShiftRepo) ListByCategory(_ context.Context, _ string, _ string) ([]shift.Shift, error) {
	return s.shifts, nil
}

func (s *stubShiftRepo) ListCategories(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (s *stubShiftRepo) List(_ context.Context, _ string) ([]shift.Shift, error) {
	return s.shifts, nil
}

func (s *stubShiftRepo) Update(_ context.Context, _ shift.Shift) error      { return nil }
func (s *stubShiftRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

type stubPresence struct{}

func (stubPresence) RecordDetection(_ context.Context, _ string, _ time.Time) error { return nil }
func (stubPresence) IsSatisfied(_ context.Context, _ string, _ time.Time, _ presence.Thresholds) bool {
	return true
}

type stubFiles struct{}

func (stubFiles) UploadSnapshot(_ context.Context, _ string, _ time.Time, _ io.Reader, _ string) (string, error) {
	return "", nil
}

func (stubFiles) DeleteSnapshot(_ context.Context, _ string) error { return nil }

func authedContext(t *testing.T, organizationID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("organization_id", organizationID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newUpdateTestService(attRepo *stubAttendanceRepo, shifts []shift.Shift) attendance.AttendanceService {
	return NewAttendanceService(
		attRepo,
		stubEmployeeRepo{},
		&stubShiftRepo{shifts: shifts},
		stubPresence{},
		NewMetricsCalculator(DefaultMinOTMinutes),
		stubFiles{},
		events.NewBus(),
	)
}

func editDayShift() shift.Shift {
	return shift.Shift{
		ID:                "shift-1",
		StartTime:         "09:00",
		EndTime:           "17:00",
		GraceAfterMinutes: 30,
	}
}

func seedClosedRecord(attRepo *stubAttendanceRepo) *attendance.Attendance {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)
	category := "ops"
	rec := &attendance.Attendance{
		ID:               "att-1",
		EmployeeID:       "emp-1",
		Date:             date,
		CheckIn:          &checkIn,
		CheckOut:         &checkOut,
		EmployeeCategory: &category,
	}
	attRepo.records = map[string]*attendance.Attendance{rec.ID: rec}
	return rec
}

func TestUpdateRejectsInvertedTimes(t *testing.T) {
	attRepo := &stubAttendanceRepo{}
	seedClosedRecord(attRepo)
	svc := newUpdateTestService(attRepo, []shift.Shift{editDayShift()})

	checkOut := "08:00"
	_, err := svc.Update(authedContext(t, "org-1"), attendance.UpdateRequest{
		ID:           "att-1",
		CheckOutTime: &checkOut,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrInvalidTimeRange))
	// Nothing was persisted.
	assert.Equal(t, 0, attRepo.updateCalls)
}

func TestUpdateManualOTOverride(t *testing.T) {
	attRepo := &stubAttendanceRepo{}
	seedClosedRecord(attRepo)
	svc := newUpdateTestService(attRepo, []shift.Shift{editDayShift()})

	ot := 2.0
	resp, err := svc.Update(authedContext(t, "org-1"), attendance.UpdateRequest{
		ID:      "att-1",
		OTHours: &ot,
	})

	require.NoError(t, err)
	assert.Equal(t, 2.0, resp.OTHours)
	// Manual OT wins: actual hours plus the override.
	assert.InDelta(t, 10.0, resp.TotalHours, 0.001)
	assert.True(t, resp.IsEdited)
	assert.True(t, attRepo.records["att-1"].OTManuallySet)
}
