package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/organization"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/events"
	attendanceSvc "github.com/ashishu703/facial-attendence-backend/internal/service/attendance"
)

type fakeAttendanceRepo struct {
	records    map[string]*attendance.Attendance
	nextID     int
	closeCalls int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) add(rec attendance.Attendance) *attendance.Attendance {
	f.nextID++
	rec.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[rec.ID] = &rec
	return &rec
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	return *f.add(rec), nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	if rec, ok := f.records[id]; ok {
		return *rec, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetOpenRecord(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) && rec.IsOpen() {
			out := *rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetLatestOpen(_ context.Context, employeeID string) (*attendance.Attendance, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.IsOpen() {
			out := *rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) CloseIfOpen(_ context.Context, id string, checkOut time.Time, metrics attendance.Metrics, location *string) (bool, error) {
	f.closeCalls++
	rec, ok := f.records[id]
	if !ok || !rec.IsOpen() {
		return false, nil
	}
	rec.CheckOut = &checkOut
	rec.CheckOutLocation = location
	rec.DelayMinutes = metrics.DelayMinutes
	rec.ExtraTimeMinutes = metrics.ExtraTimeMinutes
	rec.TotalHours = metrics.TotalHours
	rec.OTHours = metrics.OTHours
	return true, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Attendance) error {
	f.records[rec.ID] = &rec
	return nil
}

func (f *fakeAttendanceRepo) ListOpenRecords(_ context.Context) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.IsOpen() {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CountForEmployeeOnDate(_ context.Context, employeeID string, date time.Time) (int, error) {
	count := 0
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) HasCheckInOnDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) && rec.CheckIn != nil {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) HasAbsenceMarker(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) && rec.IsAbsenceMarker() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.Filter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) markersFor(employeeID string) int {
	count := 0
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.IsAbsenceMarker() {
			count++
		}
	}
	return count
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ string) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) ListActiveByCategory(_ context.Context, organizationID string, category string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.OrganizationID == organizationID && emp.Category == category && emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(_ context.Context, _ string) error            { return nil }

type fakeShiftRepo struct {
	shifts []shift.Shift
}

func (f *fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) { return s, nil }

func (f *fakeShiftRepo) GetByID(_ context.Context, id string, _ string) (shift.Shift, error) {
	for _, s := range f.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) ListByCategory(_ context.Context, organizationID string, category string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.OrganizationID == organizationID && s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) ListCategories(_ context.Context, organizationID string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, s := range f.shifts {
		if s.OrganizationID == organizationID && !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) List(_ context.Context, _ string) ([]shift.Shift, error) {
	return f.shifts, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, _ shift.Shift) error      { return nil }
func (f *fakeShiftRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

type fakeOrgRepo struct {
	ids []string
}

func (f *fakeOrgRepo) Create(_ context.Context, org organization.Organization) (organization.Organization, error) {
	return org, nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, _ string) (organization.Organization, error) {
	return organization.Organization{}, organization.ErrOrganizationNotFound
}

func (f *fakeOrgRepo) GetByEmail(_ context.Context, _ string) (organization.Organization, error) {
	return organization.Organization{}, organization.ErrOrganizationNotFound
}

func (f *fakeOrgRepo) ListIDs(_ context.Context) ([]string, error) { return f.ids, nil }

func (f *fakeOrgRepo) Update(_ context.Context, _ organization.Organization) error { return nil }
func (f *fakeOrgRepo) Delete(_ context.Context, _ string) error                    { return nil }

func strPtr(s string) *string { return &s }

// Fixed clock: well past the 09:00-17:00 day shift plus its grace.
var testNow = time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)

func testDayShift() shift.Shift {
	return shift.Shift{
		ID:                 "shift-1",
		OrganizationID:     "org-1",
		Name:               "Day",
		Category:           "ops",
		StartTime:          "09:00",
		EndTime:            "17:00",
		GraceBeforeMinutes: 15,
		GraceAfterMinutes:  30,
	}
}

func newTestJobs(attRepo *fakeAttendanceRepo, empRepo *fakeEmployeeRepo, shiftRepo *fakeShiftRepo, orgRepo *fakeOrgRepo) *AttendanceJobs {
	jobs := NewAttendanceJobs(
		attRepo, empRepo, shiftRepo, orgRepo,
		attendanceSvc.NewMetricsCalculator(attendanceSvc.DefaultMinOTMinutes),
		events.NewBus(),
		time.Minute, time.Hour,
	)
	jobs.now = func() time.Time { return testNow }
	return jobs
}

func TestSweepOverdueCheckouts(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testDayShift()}}

	checkIn := time.Date(2026, 8, 28, 9, 5, 0, 0, time.UTC)
	rec := attRepo.add(attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		CheckIn:          &checkIn,
		OrganizationID:   strPtr("org-1"),
		EmployeeCategory: strPtr("ops"),
	})

	jobs := newTestJobs(attRepo, &fakeEmployeeRepo{}, shiftRepo, &fakeOrgRepo{})

	require.NoError(t, jobs.SweepOverdueCheckouts(context.Background()))

	closed := attRepo.records[rec.ID]
	require.NotNil(t, closed.CheckOut)

	// Closed at shift end plus grace, not at the sweep time.
	deadline := time.Date(2026, 8, 28, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, deadline, *closed.CheckOut)
	assert.Equal(t, 5, closed.DelayMinutes)
	// Deadline checkout never produces overtime.
	assert.Equal(t, 0.0, closed.OTHours)
	assert.InDelta(t, 8.42, closed.TotalHours, 0.001)
}

func TestSweepOverdueCheckoutsIdempotent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testDayShift()}}

	checkIn := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	attRepo.add(attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		CheckIn:          &checkIn,
		OrganizationID:   strPtr("org-1"),
		EmployeeCategory: strPtr("ops"),
	})

	jobs := newTestJobs(attRepo, &fakeEmployeeRepo{}, shiftRepo, &fakeOrgRepo{})

	require.NoError(t, jobs.SweepOverdueCheckouts(context.Background()))
	require.NoError(t, jobs.SweepOverdueCheckouts(context.Background()))

	// The second sweep finds no open records at all.
	assert.Equal(t, 1, attRepo.closeCalls)
}

func TestSweepSkipsRecordsBeforeDeadline(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testDayShift()}}

	checkIn := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	rec := attRepo.add(attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		CheckIn:          &checkIn,
		OrganizationID:   strPtr("org-1"),
		EmployeeCategory: strPtr("ops"),
	})

	jobs := newTestJobs(attRepo, &fakeEmployeeRepo{}, shiftRepo, &fakeOrgRepo{})
	// 17:15 is inside the after-shift grace window.
	jobs.now = func() time.Time { return time.Date(2026, 8, 28, 17, 15, 0, 0, time.UTC) }

	require.NoError(t, jobs.SweepOverdueCheckouts(context.Background()))
	assert.True(t, attRepo.records[rec.ID].IsOpen())
}

func TestSweepSkipsRecordsWithoutShifts(t *testing.T) {
	attRepo := newFakeAttendanceRepo()

	checkIn := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	rec := attRepo.add(attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		CheckIn:          &checkIn,
		OrganizationID:   strPtr("org-1"),
		EmployeeCategory: strPtr("ops"),
	})

	jobs := newTestJobs(attRepo, &fakeEmployeeRepo{}, &fakeShiftRepo{}, &fakeOrgRepo{})

	require.NoError(t, jobs.SweepOverdueCheckouts(context.Background()))
	assert.True(t, attRepo.records[rec.ID].IsOpen())
}

func TestMarkAbsencesForToday(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testDayShift()}}
	orgRepo := &fakeOrgRepo{ids: []string{"org-1"}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-absent", OrganizationID: "org-1", Category: "ops", IsActive: true},
		{ID: "emp-worked", OrganizationID: "org-1", Category: "ops", IsActive: true},
		{ID: "emp-open", OrganizationID: "org-1", Category: "ops", IsActive: true},
		{ID: "emp-inactive", OrganizationID: "org-1", Category: "ops", IsActive: false},
	}}

	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)

	attRepo.add(attendance.Attendance{
		EmployeeID: "emp-worked", Date: today,
		CheckIn: &checkIn, CheckOut: &checkOut,
	})
	attRepo.add(attendance.Attendance{
		EmployeeID: "emp-open", Date: today,
		CheckIn: &checkIn,
	})

	jobs := newTestJobs(attRepo, empRepo, shiftRepo, orgRepo)

	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))

	assert.Equal(t, 1, attRepo.markersFor("emp-absent"))
	assert.Equal(t, 0, attRepo.markersFor("emp-worked"))
	// An open check-in is never converted into an absence.
	assert.Equal(t, 0, attRepo.markersFor("emp-open"))
	assert.Equal(t, 0, attRepo.markersFor("emp-inactive"))
}

func TestMarkAbsencesForTodayIdempotent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testDayShift()}}
	orgRepo := &fakeOrgRepo{ids: []string{"org-1"}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-absent", OrganizationID: "org-1", Category: "ops", IsActive: true},
	}}

	jobs := newTestJobs(attRepo, empRepo, shiftRepo, orgRepo)

	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))
	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))

	assert.Equal(t, 1, attRepo.markersFor("emp-absent"))
}

func testNightShift() shift.Shift {
	return shift.Shift{
		ID:                 "shift-2",
		OrganizationID:     "org-1",
		Name:               "Night",
		Category:           "security",
		StartTime:          "22:00",
		EndTime:            "06:00",
		GraceBeforeMinutes: 15,
		GraceAfterMinutes:  30,
	}
}

func TestMarkAbsencesOvernightShift(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testNightShift()}}
	orgRepo := &fakeOrgRepo{ids: []string{"org-1"}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-night-absent", OrganizationID: "org-1", Category: "security", IsActive: true},
		{ID: "emp-night-worked", OrganizationID: "org-1", Category: "security", IsActive: true},
	}}

	// The instance that has ended by 19:00 today started yesterday at 22:00
	// and ended this morning at 06:00.
	yesterday := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, 8, 27, 22, 5, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	attRepo.add(attendance.Attendance{
		EmployeeID: "emp-night-worked", Date: yesterday,
		CheckIn: &checkIn, CheckOut: &checkOut,
	})

	jobs := newTestJobs(attRepo, empRepo, shiftRepo, orgRepo)

	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))

	assert.Equal(t, 1, attRepo.markersFor("emp-night-absent"))
	assert.Equal(t, 0, attRepo.markersFor("emp-night-worked"))

	// The marker carries the shift's start date, not today.
	for _, rec := range attRepo.records {
		if rec.EmployeeID == "emp-night-absent" {
			assert.Equal(t, yesterday, rec.Date)
		}
	}
}

func TestMarkAbsencesOvernightShiftStillRunning(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testNightShift()}}
	orgRepo := &fakeOrgRepo{ids: []string{"org-1"}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-night-absent", OrganizationID: "org-1", Category: "security", IsActive: true},
	}}

	jobs := newTestJobs(attRepo, empRepo, shiftRepo, orgRepo)
	// 03:00 is inside yesterday's instance.
	jobs.now = func() time.Time { return time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))

	assert.Equal(t, 0, attRepo.markersFor("emp-night-absent"))
}

func TestMarkAbsencesOvernightShiftIdempotent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testNightShift()}}
	orgRepo := &fakeOrgRepo{ids: []string{"org-1"}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-night-absent", OrganizationID: "org-1", Category: "security", IsActive: true},
	}}

	jobs := newTestJobs(attRepo, empRepo, shiftRepo, orgRepo)

	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))
	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))

	assert.Equal(t, 1, attRepo.markersFor("emp-night-absent"))
}

func TestMarkAbsencesSkipsShiftsStillRunning(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	shiftRepo := &fakeShiftRepo{shifts: []shift.Shift{testDayShift()}}
	orgRepo := &fakeOrgRepo{ids: []string{"org-1"}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-absent", OrganizationID: "org-1", Category: "ops", IsActive: true},
	}}

	jobs := newTestJobs(attRepo, empRepo, shiftRepo, orgRepo)
	jobs.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.MarkAbsencesForToday(context.Background()))

	assert.Equal(t, 0, attRepo.markersFor("emp-absent"))
}
