package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/notification"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/events"
)

type fakeNotificationRepo struct {
	created []notification.Notification
	sent    []string
	failed  []string
	nextID  int
}

func (f *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	f.nextID++
	n.ID = fmt.Sprintf("ntf-%d", f.nextID)
	if n.Status == "" {
		n.Status = notification.StatusPending
	}
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListPending(_ context.Context, limit int) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.created {
		if n.Status == notification.StatusPending && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	f.setStatus(id, notification.StatusSent)
	return nil
}

func (f *fakeNotificationRepo) MarkFailed(_ context.Context, id string) error {
	f.failed = append(f.failed, id)
	f.setStatus(id, notification.StatusFailed)
	return nil
}

func (f *fakeNotificationRepo) setStatus(id string, status notification.Status) {
	for i := range f.created {
		if f.created[i].ID == id {
			f.created[i].Status = status
		}
	}
}

type fakeEmployeeLookup struct {
	emp employee.Employee
}

func (f *fakeEmployeeLookup) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}
func (f *fakeEmployeeLookup) GetByID(_ context.Context, _ string) (employee.Employee, error) {
	return f.emp, nil
}
func (f *fakeEmployeeLookup) List(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeLookup) ListActiveByCategory(_ context.Context, _ string, _ string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeLookup) Update(_ context.Context, _ employee.Employee) error { return nil }
func (f *fakeEmployeeLookup) Delete(_ context.Context, _ string) error            { return nil }

type fakeEmailSender struct {
	sent []string
	fail bool
}

func (f *fakeEmailSender) Send(to, subject, body string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeWhatsAppSender struct {
	sent []string
}

func (f *fakeWhatsAppSender) SendMessage(_ context.Context, recipient, _ string) error {
	f.sent = append(f.sent, recipient)
	return nil
}

func strPtr(s string) *string { return &s }

func TestQueueForEventFansOutPerContact(t *testing.T) {
	repo := &fakeNotificationRepo{}
	empRepo := &fakeEmployeeLookup{emp: employee.Employee{
		ID:       "emp-1",
		FullName: "Dina Putri",
		Email:    strPtr("dina@example.com"),
		Phone:    strPtr("+628123456789"),
	}}

	svc := NewNotificationService(repo, empRepo, &fakeEmailSender{}, &fakeWhatsAppSender{})

	err := svc.queueForEvent(context.Background(), events.Event{
		Type:       string(notification.TypeCheckIn),
		EmployeeID: "emp-1",
		Data:       map[string]interface{}{"date": "2026-08-28", "shift": "Day"},
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 2)
	assert.Equal(t, notification.ChannelEmail, repo.created[0].Channel)
	assert.Equal(t, "dina@example.com", repo.created[0].Recipient)
	assert.Equal(t, notification.ChannelWhatsApp, repo.created[1].Channel)
	assert.Equal(t, "+628123456789", repo.created[1].Recipient)
}

func TestQueueForEventNoContacts(t *testing.T) {
	repo := &fakeNotificationRepo{}
	empRepo := &fakeEmployeeLookup{emp: employee.Employee{ID: "emp-1", FullName: "Dina Putri"}}

	svc := NewNotificationService(repo, empRepo, &fakeEmailSender{}, &fakeWhatsAppSender{})

	err := svc.queueForEvent(context.Background(), events.Event{
		Type:       string(notification.TypeMarkedAbsent),
		EmployeeID: "emp-1",
		Data:       map[string]interface{}{"date": "2026-08-28"},
	})
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestDispatchPending(t *testing.T) {
	repo := &fakeNotificationRepo{}
	emailSender := &fakeEmailSender{}
	waSender := &fakeWhatsAppSender{}

	svc := NewNotificationService(repo, &fakeEmployeeLookup{}, emailSender, waSender)

	_, _ = repo.Create(context.Background(), notification.Notification{
		Channel: notification.ChannelEmail, Recipient: "a@example.com", Subject: "s", Message: "m",
	})
	_, _ = repo.Create(context.Background(), notification.Notification{
		Channel: notification.ChannelWhatsApp, Recipient: "+62812", Message: "m",
	})

	require.NoError(t, svc.DispatchPending(context.Background()))

	assert.Equal(t, []string{"a@example.com"}, emailSender.sent)
	assert.Equal(t, []string{"+62812"}, waSender.sent)
	assert.Len(t, repo.sent, 2)
	assert.Empty(t, repo.failed)
}

func TestDispatchPendingMarksFailures(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeEmployeeLookup{}, &fakeEmailSender{fail: true}, &fakeWhatsAppSender{})

	_, _ = repo.Create(context.Background(), notification.Notification{
		Channel: notification.ChannelEmail, Recipient: "a@example.com", Subject: "s", Message: "m",
	})

	require.NoError(t, svc.DispatchPending(context.Background()))

	require.Len(t, repo.failed, 1)
	// A failed notification is not retried on the next pass.
	require.NoError(t, svc.DispatchPending(context.Background()))
	assert.Len(t, repo.failed, 1)
}
