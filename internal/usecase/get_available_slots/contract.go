package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListLiveOverlapping возвращает живые записи ресурса, пересекающие [start, end)
	ListLiveOverlapping(ctx context.Context, resourceKey string, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента каталога и справочника мастеров
type CatalogClient interface {
	GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error)
	GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error)
	GetStaff(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error)
	ListEligibleStaff(ctx context.Context, providerID uuid.UUID, category string) ([]*domain.Staff, error)
}

// SettingsResolver источник действующих настроек расписания
type SettingsResolver interface {
	Resolve(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error)
	Defaults() domain.SchedulingDefaults
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
