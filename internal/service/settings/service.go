package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	sellerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис настроек расписания провайдера
type Service struct {
	repo     SettingsRepository
	catalog  CatalogClient
	defaults domain.SchedulingDefaults
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	repo SettingsRepository,
	catalog CatalogClient,
	defaults domain.SchedulingDefaults,
	logger Logger,
) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		defaults: defaults,
		logger:   logger,
	}
}

// Defaults возвращает значения по умолчанию из конфигурации процесса
func (s *Service) Defaults() domain.SchedulingDefaults {
	return s.defaults
}

// Resolve возвращает действующие настройки для услуги провайдера
// Приоритет: service > provider > defaults
func (s *Service) Resolve(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error) {
	settings, _, err := s.resolve(ctx, providerID, serviceID)
	return settings, err
}

func (s *Service) resolve(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, bool, error) {
	settings, err := s.repo.GetWithHierarchy(ctx, providerID, serviceID)
	if err == nil {
		return settings, false, nil
	}
	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("Resolve: repository error for provider=%s: %v", providerID, err)
		return nil, false, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	return &domain.ScheduleSettings{
		ProviderID:              providerID,
		ServiceID:               serviceID,
		SlotStepMinutes:         s.defaults.SlotStepMinutes,
		AdvanceBookingDays:      s.defaults.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.defaults.MinBookingNoticeMinutes,
	}, true, nil
}

// Get возвращает действующие настройки
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, req *models.GetSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for provider=%s, service=%v", req.ProviderID, req.ServiceID)

	provider, err := s.getProvider(ctx, "Get", req.ProviderID)
	if err != nil {
		return nil, err
	}

	settings, isDefault, err := s.resolve(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	start, end := domain.WorkingHours(nil, provider, s.defaults.WorkStartHour, s.defaults.WorkEndHour)
	return models.FromDomain(settings, isDefault, start, end), nil
}

// Update изменяет настройки уровня (провайдер или услуга)
// Доступно владельцу провайдера и администратору
// Незаданные поля берутся из действующих настроек
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for provider=%s, service=%v by user=%s",
		req.ProviderID, req.ServiceID, req.Actor.UserID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	provider, err := s.authorize(ctx, "Update", req.Actor, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 1. Берем текущие действующие значения как основу
	current, _, err := s.resolve(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	updated := &domain.ScheduleSettings{
		ProviderID:              req.ProviderID,
		ServiceID:               req.ServiceID,
		SlotStepMinutes:         current.SlotStepMinutes,
		AdvanceBookingDays:      current.AdvanceBookingDays,
		MinBookingNoticeMinutes: current.MinBookingNoticeMinutes,
	}
	req.ApplyTo(updated)

	// 2. Валидируем итоговые значения
	if err := validate(updated); err != nil {
		s.logger.Warn("Update: validation failed for provider=%s: %v", req.ProviderID, err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.repo.Upsert(ctx, updated)
	if err != nil {
		s.logger.Error("Update: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved settings id=%s for provider=%s", saved.ID, req.ProviderID)
	start, end := domain.WorkingHours(nil, provider, s.defaults.WorkStartHour, s.defaults.WorkEndHour)
	return models.FromDomain(saved, false, start, end), nil
}

// Delete сбрасывает настройки уровня к вышестоящим
// Доступно владельцу провайдера и администратору
func (s *Service) Delete(ctx context.Context, req *models.DeleteSettingsRequest) error {
	s.logger.Info("Delete: deleting settings for provider=%s, service=%v by user=%s",
		req.ProviderID, req.ServiceID, req.Actor.UserID)

	if _, err := s.authorize(ctx, "Delete", req.Actor, req.ProviderID, req.ServiceID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, req.ProviderID, req.ServiceID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Delete: no settings for provider=%s, service=%v", req.ProviderID, req.ServiceID)
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error for provider=%s: %v", req.ProviderID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted settings for provider=%s, service=%v", req.ProviderID, req.ServiceID)
	return nil
}

// Вспомогательные методы

func (s *Service) getProvider(ctx context.Context, op string, providerID uuid.UUID) (*domain.Provider, error) {
	provider, err := s.catalog.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrProviderNotFound) {
			s.logger.Warn("%s: provider id=%s not found", op, providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("%s: failed to get provider id=%s: %v", op, providerID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	return provider, nil
}

// authorize проверяет права на изменение настроек и принадлежность услуги провайдеру
func (s *Service) authorize(ctx context.Context, op string, actor domain.Actor, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.Provider, error) {
	provider, err := s.getProvider(ctx, op, providerID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && !provider.IsOwner(actor.UserID) {
		s.logger.Warn("%s: user=%s is not an owner of provider=%s", op, actor.UserID, providerID)
		return nil, ErrAccessDenied
	}

	if serviceID != nil {
		service, err := s.catalog.GetService(ctx, *serviceID)
		if err != nil {
			if errors.Is(err, sellerClient.ErrServiceNotFound) {
				s.logger.Warn("%s: service id=%s not found", op, *serviceID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("%s: failed to get service id=%s: %v", op, *serviceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.ProviderID != providerID {
			s.logger.Warn("%s: service id=%s does not belong to provider=%s", op, *serviceID, providerID)
			return nil, ErrServiceNotFound
		}
	}

	return provider, nil
}

// validate проверяет диапазоны параметров
func validate(s *domain.ScheduleSettings) error {
	if s.SlotStepMinutes < domain.MinSlotStepMinutes || s.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}
	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}
	return nil
}
