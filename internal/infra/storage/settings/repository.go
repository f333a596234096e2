package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "provider_schedule_settings"

var columns = []string{
	"id",
	"provider_id",
	"service_id",
	"slot_step_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек расписания провайдеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки ровно указанного уровня:
// serviceID == nil - настройки провайдера, иначе - настройки услуги
func (r *Repository) Get(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID})

	if serviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ScheduleSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ProviderID,
		&s.ServiceID,
		&s.SlotStepMinutes,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetWithHierarchy получает настройки с учетом приоритетов:
// 1. Настройки конкретной услуги
// 2. Настройки провайдера
// Если не найдено ни одного уровня, возвращает ErrSettingsNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error) {
	if serviceID != nil {
		s, err := r.Get(ctx, providerID, serviceID)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrSettingsNotFound) {
			return nil, fmt.Errorf("%w: GetWithHierarchy - service level: %v", ErrExecQuery, err)
		}
	}

	s, err := r.Get(ctx, providerID, nil)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetWithHierarchy - provider level: %v", ErrExecQuery, err)
	}
	return s, nil
}

// Upsert создает или обновляет настройки уровня (provider_id, service_id)
func (r *Repository) Upsert(ctx context.Context, s *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	// уникальные индексы частичные, поэтому предикат конфликта зависит от уровня
	conflict := "ON CONFLICT (provider_id) WHERE service_id IS NULL"
	if s.ServiceID != nil {
		conflict = "ON CONFLICT (provider_id, service_id) WHERE service_id IS NOT NULL"
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"provider_id",
			"service_id",
			"slot_step_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			s.ID,
			s.ProviderID,
			s.ServiceID,
			s.SlotStepMinutes,
			s.AdvanceBookingDays,
			s.MinBookingNoticeMinutes,
		).
		Suffix(conflict + ` DO UPDATE SET
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Delete удаляет настройки уровня (provider_id, service_id)
func (r *Repository) Delete(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete(table).Where(squirrel.Eq{"provider_id": providerID})
	if serviceID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"service_id": nil})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
