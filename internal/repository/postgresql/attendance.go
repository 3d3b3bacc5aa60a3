package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/attendance"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in, a.check_out,
		a.check_in_location, a.check_out_location, a.check_in_snapshot_url,
		a.delay_minutes, a.extra_time_minutes, a.total_hours_decimal, a.ot_hours_decimal,
		a.ot_manually_set, a.is_edited, a.remark, a.edited_at,
		a.created_at, a.updated_at,
		e.full_name, e.category, e.organization_id`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.CheckInLocation, &att.CheckOutLocation, &att.CheckInSnapshotURL,
		&att.DelayMinutes, &att.ExtraTimeMinutes, &att.TotalHours, &att.OTHours,
		&att.OTManuallySet, &att.IsEdited, &att.Remark, &att.EditedAt,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCategory, &att.OrganizationID,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	att.ID = uuid.New().String()

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out,
			check_in_location, check_out_location, check_in_snapshot_url,
			delay_minutes, extra_time_minutes, total_hours_decimal, ot_hours_decimal,
			ot_manually_set, is_edited, remark, edited_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, att.Date, att.CheckIn, att.CheckOut,
		att.CheckInLocation, att.CheckOutLocation, att.CheckInSnapshotURL,
		att.DelayMinutes, att.ExtraTimeMinutes, att.TotalHours, att.OTHours,
		att.OTManuallySet, att.IsEdited, att.Remark, att.EditedAt,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetOpenRecord implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenRecord(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open record: %w", err)
	}

	return &att, nil
}

// GetLatestOpen implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetLatestOpen(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest open record: %w", err)
	}

	return &att, nil
}

// CloseIfOpen implements attendance.AttendanceRepository. The WHERE clause
// carries the open-record condition, so whichever of the punch path and the
// sweeper commits first wins and the loser sees false.
func (r *attendanceRepository) CloseIfOpen(ctx context.Context, id string, checkOut time.Time, metrics attendance.Metrics, location *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $2,
			check_out_location = $3,
			delay_minutes = $4,
			extra_time_minutes = $5,
			total_hours_decimal = $6,
			ot_hours_decimal = $7,
			updated_at = NOW()
		WHERE id = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		id, checkOut, location,
		metrics.DelayMinutes, metrics.ExtraTimeMinutes, metrics.TotalHours, metrics.OTHours,
	)
	if err != nil {
		return false, fmt.Errorf("failed to close attendance: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3,
			check_in_location = $4, check_out_location = $5,
			delay_minutes = $6, extra_time_minutes = $7,
			total_hours_decimal = $8, ot_hours_decimal = $9,
			ot_manually_set = $10, is_edited = $11, remark = $12, edited_at = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.CheckIn, att.CheckOut,
		att.CheckInLocation, att.CheckOutLocation,
		att.DelayMinutes, att.ExtraTimeMinutes,
		att.TotalHours, att.OTHours,
		att.OTManuallySet, att.IsEdited, att.Remark, att.EditedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListOpenRecords implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpenRecords(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		ORDER BY a.check_in`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open records: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// CountForEmployeeOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE employee_id = $1 AND date = $2`,
		employeeID, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	return count, nil
}

// HasCheckInOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) HasCheckInOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND date = $2 AND check_in IS NOT NULL
		)`,
		employeeID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check check-in presence: %w", err)
	}

	return exists, nil
}

// HasAbsenceMarker implements attendance.AttendanceRepository.
func (r *attendanceRepository) HasAbsenceMarker(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND date = $2
			  AND check_in IS NULL AND check_out IS NULL
		)`,
		employeeID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check absence marker: %w", err)
	}

	return exists, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", argPos))
		args = append(args, filter.Category)
		argPos++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`SELECT `+attendanceColumns+`
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, a.check_in DESC NULLS LAST
		LIMIT $%d OFFSET $%d`, where, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
