package database

import (
	"context"
	"fmt"
	"log/slog"
)

// Schema bootstrap statements. Every statement is idempotent so Migrate can
// run unconditionally on every process start, before the scheduler and the
// HTTP handlers are wired up.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		phone TEXT,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY,
		organization_id UUID NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		employee_code TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		category TEXT NOT NULL DEFAULT 'general',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (organization_id, employee_code)
	)`,
	`CREATE TABLE IF NOT EXISTS shifts (
		id UUID PRIMARY KEY,
		organization_id UUID NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'general',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		grace_before_minutes INT NOT NULL DEFAULT 0,
		grace_after_minutes INT NOT NULL DEFAULT 0,
		presence_time_seconds INT NOT NULL DEFAULT 0,
		presence_count INT NOT NULL DEFAULT 0,
		presence_window_seconds INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendances (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		check_in TIMESTAMPTZ,
		check_out TIMESTAMPTZ,
		check_in_location TEXT,
		check_out_location TEXT,
		check_in_snapshot_url TEXT,
		delay_minutes INT NOT NULL DEFAULT 0,
		extra_time_minutes INT NOT NULL DEFAULT 0,
		total_hours_decimal DOUBLE PRECISION NOT NULL DEFAULT 0,
		ot_hours_decimal DOUBLE PRECISION NOT NULL DEFAULT 0,
		ot_manually_set BOOLEAN NOT NULL DEFAULT FALSE,
		is_edited BOOLEAN NOT NULL DEFAULT FALSE,
		remark TEXT,
		edited_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// Multiple punches per employee per day are allowed (multi-shift / OT
	// punching), so there is deliberately no unique constraint on
	// (employee_id, date).
	`CREATE INDEX IF NOT EXISTS idx_attendances_employee_date
		ON attendances (employee_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_attendances_open
		ON attendances (employee_id) WHERE check_out IS NULL AND check_in IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS presence_detections (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		detection_time TIMESTAMPTZ NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_presence_detections_employee_date
		ON presence_detections (employee_id, date, detection_time DESC)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		employee_id UUID REFERENCES employees(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		channel TEXT NOT NULL,
		recipient TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		sent_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_pending
		ON notifications (created_at) WHERE status = 'pending'`,
}

// Migrate bootstraps the schema. It replaces the runtime "has the schema been
// created yet" guard flag with a single pass executed once at startup.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	slog.Info("Database schema up to date", "statements", len(migrations))
	return nil
}
