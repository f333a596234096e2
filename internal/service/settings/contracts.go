package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error)
	GetWithHierarchy(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error)
	Upsert(ctx context.Context, s *domain.ScheduleSettings) (*domain.ScheduleSettings, error)
	Delete(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) error
}

// CatalogClient интерфейс клиента каталога (SellerService)
type CatalogClient interface {
	GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error)
	GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
