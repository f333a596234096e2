package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RecordingNotifier keeps every notification it was asked to send.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification

	// Err, when set, fails every Send after recording the attempt.
	Err error
}

func (n *RecordingNotifier) Send(_ context.Context, msg domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.Err
}

func (n *RecordingNotifier) Close() error { return nil }

// Sent returns a copy of the recorded notifications.
func (n *RecordingNotifier) Sent() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Notification, len(n.sent))
	copy(out, n.sent)
	return out
}

// NotificationLog is an in-memory notification store.
type NotificationLog struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Notification
	order []uuid.UUID
}

func NewNotificationLog() *NotificationLog {
	return &NotificationLog{items: make(map[uuid.UUID]*domain.Notification)}
}

func (l *NotificationLog) Create(_ context.Context, n *domain.Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.Status = domain.NotificationQueued
	cp := *n
	l.items[n.ID] = &cp
	l.order = append(l.order, n.ID)
	return nil
}

func (l *NotificationLog) MarkSent(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n, ok := l.items[id]; ok {
		n.Status = domain.NotificationSent
		n.SentAt = &sentAt
	}
	return nil
}

func (l *NotificationLog) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n, ok := l.items[id]; ok {
		n.Status = domain.NotificationFailed
		n.Error = &reason
	}
	return nil
}

// All returns the logged notifications in creation order.
func (l *NotificationLog) All() []domain.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Notification, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.items[id])
	}
	return out
}

// ListByBooking returns the notifications of one booking in creation order.
func (l *NotificationLog) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]*domain.Notification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*domain.Notification, 0)
	for _, id := range l.order {
		if n := l.items[id]; n.BookingID == bookingID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

// FixedClock is a TimeProvider frozen at T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
