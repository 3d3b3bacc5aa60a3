package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/organization"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/events"
	attendanceSvc "github.com/ashishu703/facial-attendence-backend/internal/service/attendance"
)

// AttendanceJobs owns the timer-driven attendance maintenance: force-closing
// overdue open records and inserting absence markers. Both jobs are
// idempotent; a record is only ever mutated once and re-runs are no-ops.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	shiftRepo      shift.ShiftRepository
	orgRepo        organization.OrganizationRepository
	calculator     *attendanceSvc.MetricsCalculator
	bus            *events.Bus

	sweepInterval   time.Duration
	absenceInterval time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	orgRepo organization.OrganizationRepository,
	calculator *attendanceSvc.MetricsCalculator,
	bus *events.Bus,
	sweepInterval time.Duration,
	absenceInterval time.Duration,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:  attendanceRepo,
		employeeRepo:    employeeRepo,
		shiftRepo:       shiftRepo,
		orgRepo:         orgRepo,
		calculator:      calculator,
		bus:             bus,
		sweepInterval:   sweepInterval,
		absenceInterval: absenceInterval,
		now:             time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_overdue_checkouts", j.sweepInterval, j.SweepOverdueCheckouts)
	scheduler.AddJob("mark_absent_employees", j.absenceInterval, j.MarkAbsencesForToday)
}

// SweepOverdueCheckouts force-closes open records whose shift-end-plus-grace
// deadline has passed. The check-out is set to the deadline itself, not to
// the sweep time, so a record closed hours late still carries shift-shaped
// metrics. The close is conditional on the record still being open, which
// keeps the race against a concurrent manual check-out benign.
func (j *AttendanceJobs) SweepOverdueCheckouts(ctx context.Context) error {
	now := j.now().UTC()

	openRecords, err := j.attendanceRepo.ListOpenRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open records: %w", err)
	}
	if len(openRecords) == 0 {
		return nil
	}

	closedCount := 0
	for _, rec := range openRecords {
		if rec.CheckIn == nil {
			continue
		}
		if rec.OrganizationID == nil || rec.EmployeeCategory == nil {
			slog.Warn("Cron: Open record missing employee join, skipping",
				"attendance_id", rec.ID)
			continue
		}

		shifts, err := j.shiftRepo.ListByCategory(ctx, *rec.OrganizationID, *rec.EmployeeCategory)
		if err != nil {
			slog.Error("Cron: Failed to load shifts for open record",
				"attendance_id", rec.ID, "error", err)
			continue
		}

		matched, ok := attendanceSvc.DetectShiftForTime(shifts, *rec.CheckIn)
		if !ok {
			// No shift information for this category; leave the record
			// open rather than guessing a deadline.
			continue
		}

		_, end := attendanceSvc.ShiftBoundsOn(matched.Shift, *rec.CheckIn)
		deadline := end.Add(time.Duration(matched.Shift.GraceAfterMinutes) * time.Minute)
		if now.Before(deadline) {
			continue
		}

		metrics := j.calculator.Compute(*rec.CheckIn, deadline, shifts, false)

		closed, err := j.attendanceRepo.CloseIfOpen(ctx, rec.ID, deadline, metrics, nil)
		if err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			continue
		}
		if !closed {
			// Someone beat us to it; nothing to do.
			continue
		}

		j.bus.Publish(events.Event{
			Type:       "attendance_auto_closed",
			EmployeeID: rec.EmployeeID,
			Data: map[string]interface{}{
				"attendance_id": rec.ID,
				"date":          rec.Date.Format("2006-01-02"),
				"closed_at":     deadline.Format(time.RFC3339),
			},
		})
		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-closed overdue attendances", "count", closedCount)
	}
	return nil
}

// MarkAbsencesForToday inserts null/null absence markers for employees with
// no attendance on a shift's day, per category, once that shift instance has
// ended (UTC anchored). A shift crossing midnight belongs to the day it
// starts, so the instance that can have ended by now is yesterday's; its
// markers carry yesterday's date. Employees with an open check-in are left
// to the sweeper.
func (j *AttendanceJobs) MarkAbsencesForToday(ctx context.Context) error {
	now := j.now().UTC()

	orgIDs, err := j.orgRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	totalMarked := 0
	for _, orgID := range orgIDs {
		categories, err := j.shiftRepo.ListCategories(ctx, orgID)
		if err != nil {
			slog.Error("Cron: Failed to list shift categories",
				"organization_id", orgID, "error", err)
			continue
		}

		for _, category := range categories {
			shifts, err := j.shiftRepo.ListByCategory(ctx, orgID, category)
			if err != nil {
				slog.Error("Cron: Failed to load shifts",
					"organization_id", orgID, "category", category, "error", err)
				continue
			}

			for _, s := range shifts {
				anchor := now
				if attendanceSvc.CrossesMidnight(s) {
					anchor = now.AddDate(0, 0, -1)
				}
				_, end := attendanceSvc.ShiftBoundsOn(s, anchor)
				if now.Before(end) {
					// This shift instance has not ended yet.
					continue
				}

				marked, err := j.markAbsentForShift(ctx, orgID, category, anchor.Truncate(24*time.Hour))
				if err != nil {
					slog.Error("Cron: Failed to mark absences",
						"organization_id", orgID, "category", category, "error", err)
					continue
				}
				totalMarked += marked
			}
		}
	}

	if totalMarked > 0 {
		slog.Info("Cron: Marked absent employees", "count", totalMarked)
	}
	return nil
}

func (j *AttendanceJobs) markAbsentForShift(ctx context.Context, orgID, category string, date time.Time) (int, error) {
	employees, err := j.employeeRepo.ListActiveByCategory(ctx, orgID, category)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	marked := 0
	for _, emp := range employees {
		count, err := j.attendanceRepo.CountForEmployeeOnDate(ctx, emp.ID, date)
		if err != nil {
			slog.Error("Cron: Failed to count records", "employee_id", emp.ID, "error", err)
			continue
		}

		if count > 0 {
			hasCheckIn, err := j.attendanceRepo.HasCheckInOnDate(ctx, emp.ID, date)
			if err != nil {
				slog.Error("Cron: Failed to check check-in", "employee_id", emp.ID, "error", err)
				continue
			}
			if hasCheckIn {
				// Open shifts belong to the sweeper; closed ones need nothing.
				slog.Debug("Cron: Employee has attendance on this date, skipping",
					"employee_id", emp.ID)
				continue
			}

			exists, err := j.attendanceRepo.HasAbsenceMarker(ctx, emp.ID, date)
			if err != nil {
				slog.Error("Cron: Failed to check absence marker", "employee_id", emp.ID, "error", err)
				continue
			}
			if exists {
				continue
			}
		}

		if _, err := j.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       date,
		}); err != nil {
			slog.Error("Cron: Failed to insert absence marker",
				"employee_id", emp.ID, "error", err)
			continue
		}

		j.bus.Publish(events.Event{
			Type:       "attendance_marked_absent",
			EmployeeID: emp.ID,
			Data: map[string]interface{}{
				"date": date.Format("2006-01-02"),
			},
		})
		marked++
	}

	return marked, nil
}
