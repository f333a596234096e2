package notifier

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// LogNotifier пишет уведомления в лог (локальный запуск без брокера)
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает нотификатор, который только логирует
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send логирует уведомление
func (n *LogNotifier) Send(_ context.Context, msg domain.Notification) error {
	n.log.Info("Notification: to=%s(%s), event=%s, title=%q, booking=%s",
		msg.RecipientID, msg.RecipientRole, msg.Event, msg.Title, msg.BookingID)
	return nil
}

// Close ничего не делает
func (n *LogNotifier) Close() error {
	return nil
}
