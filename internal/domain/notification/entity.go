package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeCheckIn      NotificationType = "attendance_check_in"
	TypeCheckOut     NotificationType = "attendance_check_out"
	TypeAutoClosed   NotificationType = "attendance_auto_closed"
	TypeMarkedAbsent NotificationType = "attendance_marked_absent"
)

// Channel is the delivery medium for an outbound notification.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// Status tracks the delivery lifecycle of a queued notification.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Notification is a queued outbound message. The attendance write path only
// ever queues; a background worker owns delivery, so sender failures can
// never fail an attendance write.
type Notification struct {
	ID         string
	EmployeeID *string
	Type       NotificationType
	Channel    Channel
	Recipient  string
	Subject    string
	Message    string
	Status     Status
	SentAt     *time.Time
	CreatedAt  time.Time
}
