package bookings

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	sellerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	guard        ConflictGuard
	catalog      CatalogClient
	settings     SettingsResolver
	txManager    TransactionManager
	trigger      NotificationTrigger
	metrics      MetricsRecorder
	zone         timewindow.Zone
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// metrics может быть nil
func NewService(
	bookingRepo BookingRepository,
	guard ConflictGuard,
	catalog CatalogClient,
	settings SettingsResolver,
	txManager TransactionManager,
	trigger NotificationTrigger,
	metrics MetricsRecorder,
	zone timewindow.Zone,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		guard:        guard,
		catalog:      catalog,
		settings:     settings,
		txManager:    txManager,
		trigger:      trigger,
		metrics:      metrics,
		zone:         zone,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту записи, владельцу провайдера и администратору
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.UserID)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, "GetByID", booking, actor, domain.RoleClient, domain.RoleProvider, domain.RoleAdmin); err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) ListClientBookings(ctx context.Context, req *models.ListClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListClientBookings: fetching bookings for client=%s, status=%v", req.ClientID, req.Status)

	limit, err := normalizeLimit(req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	req.Limit = limit

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListClientBookings: invalid status=%v for client=%s", req.Status, req.ClientID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByClient(ctx, filter)
	if err != nil {
		s.logger.Error("ListClientBookings: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListClientBookings: successfully fetched %d bookings for client=%s", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings, filter.Limit, filter.Offset), nil
}

// ListProviderBookings получает бронирования провайдера с фильтрацией
// по мастеру, периоду, статусу и включению неактивных бронирований
// Доступно владельцу провайдера и администратору
func (s *Service) ListProviderBookings(ctx context.Context, req *models.ListProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListProviderBookings: fetching bookings for provider=%s, user=%s, staff=%v, status=%v, includeInactive=%t",
		req.ProviderID, req.Actor.UserID, req.StaffID, req.Status, req.IncludeInactive)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	limit, err := normalizeLimit(req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	req.Limit = limit

	if !req.Actor.IsAdmin {
		provider, err := s.getProvider(ctx, "ListProviderBookings", req.ProviderID)
		if err != nil {
			return nil, err
		}
		if !provider.IsOwner(req.Actor.UserID) {
			s.logger.Warn("ListProviderBookings: user=%s is not an owner of provider=%s", req.Actor.UserID, req.ProviderID)
			return nil, ErrAccessDenied
		}
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListProviderBookings: invalid filter for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByProvider(ctx, filter)
	if err != nil {
		s.logger.Error("ListProviderBookings: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ListProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListProviderBookings: successfully fetched %d bookings for provider=%s", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings, filter.Limit, filter.Offset), nil
}

// Вспомогательные методы

// load читает бронирование вне транзакции
func (s *Service) load(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

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

// authorize определяет, в какой роли actor действует над записью.
// Роли проверяются в порядке admin, client, provider; допустимы только allowed.
func (s *Service) authorize(
	ctx context.Context,
	op string,
	booking *domain.Booking,
	actor domain.Actor,
	allowed ...domain.ActorRole,
) (domain.ActorRole, error) {
	if actor.IsAdmin && slices.Contains(allowed, domain.RoleAdmin) {
		return domain.RoleAdmin, nil
	}
	if booking.BelongsToClient(actor.UserID) && slices.Contains(allowed, domain.RoleClient) {
		return domain.RoleClient, nil
	}
	if slices.Contains(allowed, domain.RoleProvider) {
		provider, err := s.getProvider(ctx, op, booking.ProviderID)
		if err != nil {
			return "", err
		}
		if provider.IsOwner(actor.UserID) {
			return domain.RoleProvider, nil
		}
	}

	s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, actor.UserID, booking.ID)
	return "", ErrAccessDenied
}

// normalizeLimit применяет лимит по умолчанию и ограничивает максимум
func normalizeLimit(limit, offset int) (int, error) {
	if limit < 0 || offset < 0 {
		return 0, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		return domain.DefaultListLimit, nil
	}
	return min(limit, domain.MaxListLimit), nil
}

func (s *Service) recordTransition(event domain.BookingEvent) {
	if s.metrics != nil {
		s.metrics.IncBookingTransition(string(event))
	}
}

func (s *Service) recordConflict(operation string) {
	if s.metrics != nil {
		s.metrics.IncSlotConflict(operation)
	}
}
