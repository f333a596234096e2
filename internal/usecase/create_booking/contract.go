package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ConflictGuard проверка занятости ресурса внутри транзакции
type ConflictGuard interface {
	Ensure(ctx context.Context, resource domain.Resource, interval timewindow.Interval, excludeID *uuid.UUID) error
}

// CatalogClient интерфейс клиента каталога и справочника мастеров
type CatalogClient interface {
	GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error)
	GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error)
	GetStaff(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	OwnsCar(ctx context.Context, userID, carID uuid.UUID) (bool, error)
}

// SettingsResolver источник действующих настроек расписания
type SettingsResolver interface {
	Resolve(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error)
	Defaults() domain.SchedulingDefaults
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationTrigger отправка уведомления после коммита
type NotificationTrigger interface {
	Notify(b *domain.Booking, event domain.BookingEvent, by domain.ActorRole)
}

// MetricsRecorder счетчики переходов и конфликтов
type MetricsRecorder interface {
	IncBookingTransition(event string)
	IncSlotConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
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
