package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Notifier доставляет уведомление получателю
type Notifier interface {
	Send(ctx context.Context, msg domain.Notification) error
}

// Store журнал уведомлений (опционален)
type Store interface {
	Create(ctx context.Context, n *domain.Notification) error
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// Recorder счетчик доставок (опционален)
type Recorder interface {
	IncNotification(event, result string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
