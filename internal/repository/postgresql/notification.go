package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/notification"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}

// Create implements notification.NotificationRepository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	n.ID = uuid.New().String()
	if n.Status == "" {
		n.Status = notification.StatusPending
	}

	query := `
		INSERT INTO notifications (id, employee_id, type, channel, recipient, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		n.ID, n.EmployeeID, n.Type, n.Channel, n.Recipient, n.Subject, n.Message, n.Status,
	).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// ListPending implements notification.NotificationRepository.
func (r *notificationRepository) ListPending(ctx context.Context, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, channel, recipient, subject, message, status, sent_at, created_at
		FROM notifications
		WHERE status = 'pending'
		ORDER BY created_at
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.EmployeeID, &n.Type, &n.Channel, &n.Recipient,
			&n.Subject, &n.Message, &n.Status, &n.SentAt, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkSent implements notification.NotificationRepository.
func (r *notificationRepository) MarkSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET status = 'sent', sent_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	return nil
}

// MarkFailed implements notification.NotificationRepository.
func (r *notificationRepository) MarkFailed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET status = 'failed' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}

	return nil
}
