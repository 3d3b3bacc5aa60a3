package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)

	// ListPending returns queued notifications oldest-first, capped at limit.
	ListPending(ctx context.Context, limit int) ([]Notification, error)

	// MarkSent / MarkFailed move a notification out of the pending state.
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// Service queues notifications and flushes the pending queue to the
// configured senders.
type Service interface {
	Queue(ctx context.Context, n Notification) error
	DispatchPending(ctx context.Context) error
}
