// Package notify отправляет уведомления участникам записи после фиксации перехода.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

const (
	resultSent   = "sent"
	resultFailed = "failed"

	defaultDispatchTimeout = 5 * time.Second
)

// Trigger строит уведомление по событию и доставляет его асинхронно.
// Ошибки доставки логируются и не влияют на результат операции.
type Trigger struct {
	notifier Notifier
	store    Store
	recorder Recorder
	clock    TimeProvider
	zone     timewindow.Zone
	timeout  time.Duration
	logger   Logger

	wg sync.WaitGroup
}

// Option настройка Trigger
type Option func(*Trigger)

// WithStore включает журнал уведомлений
func WithStore(store Store) Option {
	return func(t *Trigger) { t.store = store }
}

// WithRecorder включает метрики доставки
func WithRecorder(recorder Recorder) Option {
	return func(t *Trigger) { t.recorder = recorder }
}

// WithTimeout задает таймаут одной доставки
func WithTimeout(d time.Duration) Option {
	return func(t *Trigger) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// NewTrigger создает Trigger
func NewTrigger(notifier Notifier, clock TimeProvider, zone timewindow.Zone, logger Logger, opts ...Option) *Trigger {
	t := &Trigger{
		notifier: notifier,
		clock:    clock,
		zone:     zone,
		timeout:  defaultDispatchTimeout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Build возвращает уведомление для события или false, если оно не положено
func (t *Trigger) Build(b *domain.Booking, event domain.BookingEvent, by domain.ActorRole) (domain.Notification, bool) {
	recipientID, role, ok := recipient(b, event, by)
	if !ok {
		return domain.Notification{}, false
	}

	title, body := render(b, event, t.zone)
	return domain.Notification{
		ID:            uuid.New(),
		BookingID:     b.ID,
		RecipientID:   recipientID,
		RecipientRole: role,
		Event:         event,
		Title:         title,
		Body:          body,
		Metadata:      metadata(b, event),
		Status:        domain.NotificationQueued,
		CreatedAt:     t.clock.Now(),
	}, true
}

// Notify запускает доставку уведомления. Вызывать только после коммита.
func (t *Trigger) Notify(b *domain.Booking, event domain.BookingEvent, by domain.ActorRole) {
	msg, ok := t.Build(b, event, by)
	if !ok {
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		// контекст запроса к этому моменту может быть отменен
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		t.dispatch(ctx, msg)
	}()
}

// Wait дожидается завершения всех запущенных доставок
func (t *Trigger) Wait() {
	t.wg.Wait()
}

func (t *Trigger) dispatch(ctx context.Context, msg domain.Notification) {
	logged := false
	if t.store != nil {
		if err := t.store.Create(ctx, &msg); err != nil {
			t.logger.Warn("Notify: failed to log notification for booking=%s: %v", msg.BookingID, err)
		} else {
			logged = true
		}
	}

	if err := t.notifier.Send(ctx, msg); err != nil {
		t.logger.Error("Notify: failed to send %s notification for booking=%s to %s=%s: %v",
			msg.Event, msg.BookingID, msg.RecipientRole, msg.RecipientID, err)
		t.record(msg.Event, resultFailed)
		if logged {
			if err := t.store.MarkFailed(ctx, msg.ID, err.Error()); err != nil {
				t.logger.Warn("Notify: failed to mark notification=%s failed: %v", msg.ID, err)
			}
		}
		return
	}

	t.logger.Info("Notify: %s notification for booking=%s sent to %s=%s",
		msg.Event, msg.BookingID, msg.RecipientRole, msg.RecipientID)
	t.record(msg.Event, resultSent)
	if logged {
		if err := t.store.MarkSent(ctx, msg.ID, t.clock.Now()); err != nil {
			t.logger.Warn("Notify: failed to mark notification=%s sent: %v", msg.ID, err)
		}
	}
}

func (t *Trigger) record(event domain.BookingEvent, result string) {
	if t.recorder != nil {
		t.recorder.IncNotification(string(event), result)
	}
}
