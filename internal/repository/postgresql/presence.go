package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/presence"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/database"
)

type detectionRepository struct {
	db *database.DB
}

func NewDetectionRepository(db *database.DB) presence.DetectionRepository {
	return &detectionRepository{db: db}
}

// Record implements presence.DetectionRepository.
func (r *detectionRepository) Record(ctx context.Context, detection presence.Detection) error {
	q := GetQuerier(ctx, r.db)

	if detection.ID == "" {
		detection.ID = uuid.New().String()
	}

	query := `
		INSERT INTO presence_detections (id, employee_id, detection_time, date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.Exec(ctx, query,
		detection.ID, detection.EmployeeID, detection.DetectionTime, detection.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to record detection: %w", err)
	}

	return nil
}

// ListSince implements presence.DetectionRepository.
func (r *detectionRepository) ListSince(ctx context.Context, employeeID string, date time.Time, since time.Time) ([]presence.Detection, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, detection_time, date, created_at
		FROM presence_detections
		WHERE employee_id = $1
		  AND date = $2
		  AND detection_time >= $3
		ORDER BY detection_time DESC
	`

	rows, err := q.Query(ctx, query, employeeID, date, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}
	defer rows.Close()

	var detections []presence.Detection
	for rows.Next() {
		var d presence.Detection
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.DetectionTime, &d.Date, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		detections = append(detections, d)
	}

	return detections, rows.Err()
}

// PurgeOlderThan implements presence.DetectionRepository.
func (r *detectionRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM presence_detections WHERE detection_time < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge detections: %w", err)
	}

	return tag.RowsAffected(), nil
}
