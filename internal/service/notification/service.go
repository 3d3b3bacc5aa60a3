package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/notification"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/email"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/events"
)

// WhatsAppSender is the slice of the gateway client the dispatcher needs.
type WhatsAppSender interface {
	SendMessage(ctx context.Context, recipient, message string) error
}

type NotificationServiceImpl struct {
	notification.NotificationRepository
	employee.EmployeeRepository
	emailSender    email.Sender
	whatsappSender WhatsAppSender
}

func NewNotificationService(
	notificationRepo notification.NotificationRepository,
	employeeRepo employee.EmployeeRepository,
	emailSender email.Sender,
	whatsappSender WhatsAppSender,
) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		NotificationRepository: notificationRepo,
		EmployeeRepository:     employeeRepo,
		emailSender:            emailSender,
		whatsappSender:         whatsappSender,
	}
}

// Queue implements notification.Service.
func (n *NotificationServiceImpl) Queue(ctx context.Context, msg notification.Notification) error {
	if _, err := n.NotificationRepository.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to queue notification: %w", err)
	}
	return nil
}

// DispatchPending implements notification.Service. Each pending row is
// attempted once per pass; failures are marked and stay visible for
// operational follow-up rather than being retried forever.
func (n *NotificationServiceImpl) DispatchPending(ctx context.Context) error {
	pending, err := n.NotificationRepository.ListPending(ctx, 50)
	if err != nil {
		return fmt.Errorf("failed to list pending notifications: %w", err)
	}

	for _, msg := range pending {
		var sendErr error
		switch msg.Channel {
		case notification.ChannelEmail:
			sendErr = n.emailSender.Send(msg.Recipient, msg.Subject, msg.Message)
		case notification.ChannelWhatsApp:
			sendErr = n.whatsappSender.SendMessage(ctx, msg.Recipient, msg.Message)
		default:
			sendErr = fmt.Errorf("unknown channel: %s", msg.Channel)
		}

		if sendErr != nil {
			slog.Error("Failed to dispatch notification",
				"notification_id", msg.ID, "channel", msg.Channel, "error", sendErr)
			if err := n.NotificationRepository.MarkFailed(ctx, msg.ID); err != nil {
				slog.Error("Failed to mark notification failed", "notification_id", msg.ID, "error", err)
			}
			continue
		}

		if err := n.NotificationRepository.MarkSent(ctx, msg.ID); err != nil {
			slog.Error("Failed to mark notification sent", "notification_id", msg.ID, "error", err)
		}
	}

	return nil
}

// Run consumes attendance events and flushes the outbox until ctx is
// cancelled. Intended to run in its own goroutine.
func (n *NotificationServiceImpl) Run(ctx context.Context, bus *events.Bus, dispatchGap time.Duration) {
	eventCh, cleanup := bus.Subscribe()
	defer cleanup()

	if dispatchGap <= 0 {
		dispatchGap = 30 * time.Second
	}
	ticker := time.NewTicker(dispatchGap)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			if err := n.queueForEvent(ctx, event); err != nil {
				slog.Error("Failed to queue notifications for event",
					"event_type", event.Type, "employee_id", event.EmployeeID, "error", err)
			}
		case <-ticker.C:
			if err := n.DispatchPending(ctx); err != nil {
				slog.Error("Notification dispatch pass failed", "error", err)
			}
		}
	}
}

// queueForEvent fans one attendance event out to every channel the employee
// has a contact for. An employee with neither email nor phone produces no
// notifications.
func (n *NotificationServiceImpl) queueForEvent(ctx context.Context, event events.Event) error {
	emp, err := n.EmployeeRepository.GetByID(ctx, event.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to load employee: %w", err)
	}

	subject, message := composeMessage(event, emp.FullName)
	if subject == "" {
		return nil
	}

	if emp.Email != nil && *emp.Email != "" {
		if err := n.Queue(ctx, notification.Notification{
			EmployeeID: &emp.ID,
			Type:       notification.NotificationType(event.Type),
			Channel:    notification.ChannelEmail,
			Recipient:  *emp.Email,
			Subject:    subject,
			Message:    message,
		}); err != nil {
			return err
		}
	}

	if emp.Phone != nil && *emp.Phone != "" {
		if err := n.Queue(ctx, notification.Notification{
			EmployeeID: &emp.ID,
			Type:       notification.NotificationType(event.Type),
			Channel:    notification.ChannelWhatsApp,
			Recipient:  *emp.Phone,
			Subject:    subject,
			Message:    message,
		}); err != nil {
			return err
		}
	}

	return nil
}

func composeMessage(event events.Event, employeeName string) (subject, message string) {
	date, _ := event.Data["date"].(string)

	switch notification.NotificationType(event.Type) {
	case notification.TypeCheckIn:
		shiftName, _ := event.Data["shift"].(string)
		return "Check-in recorded",
			fmt.Sprintf("Hi %s, your check-in for %s (%s shift) was recorded.", employeeName, date, shiftName)
	case notification.TypeCheckOut:
		return "Check-out recorded",
			fmt.Sprintf("Hi %s, your check-out for %s was recorded.", employeeName, date)
	case notification.TypeAutoClosed:
		closedAt, _ := event.Data["closed_at"].(string)
		return "Attendance closed automatically",
			fmt.Sprintf("Hi %s, your open attendance for %s was closed automatically at %s because no check-out was recorded.", employeeName, date, closedAt)
	case notification.TypeMarkedAbsent:
		return "Marked absent",
			fmt.Sprintf("Hi %s, you were marked absent for %s.", employeeName, date)
	default:
		return "", ""
	}
}
