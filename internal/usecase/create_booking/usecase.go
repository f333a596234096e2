package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	sellerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/sellerservice"
	userClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflictguard"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	guard        ConflictGuard
	catalog      CatalogClient
	userClient   UserServiceClient
	settings     SettingsResolver
	txManager    TransactionManager
	trigger      NotificationTrigger
	metrics      MetricsRecorder
	zone         timewindow.Zone
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	guard ConflictGuard,
	catalog CatalogClient,
	userClient UserServiceClient,
	settings SettingsResolver,
	txManager TransactionManager,
	trigger NotificationTrigger,
	metrics MetricsRecorder,
	zone timewindow.Zone,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		guard:        guard,
		catalog:      catalog,
		userClient:   userClient,
		settings:     settings,
		txManager:    txManager,
		trigger:      trigger,
		metrics:      metrics,
		zone:         zone,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, service=%s, staff=%v, start=%s",
		req.ClientID, req.ServiceID, req.StaffID, req.StartTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Error("CreateBooking: service id=%s has non-positive duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service has invalid duration", ErrInternal)
	}

	// 3. Проверяем автомобиль
	if req.CarID != nil {
		if err := uc.checkCar(ctx, req); err != nil {
			return nil, err
		}
	}

	// 4. Провайдер и мастер
	provider, err := uc.catalog.GetProvider(ctx, service.ProviderID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%s not found", service.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%s: %v", service.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	var staff *domain.Staff
	if req.StaffID != nil {
		staff, err = uc.getStaff(ctx, *req.StaffID, service, provider)
		if err != nil {
			return nil, err
		}
	}

	// 5. Проверяем время относительно настроек и рабочего окна
	settings, err := uc.settings.Resolve(ctx, provider.ID, &service.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve settings: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	if err := validateStartTime(uc.zone, req.StartTime, now, settings); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	interval := timewindow.NewInterval(req.StartTime, service.Duration())
	window := domain.WorkingWindow(uc.zone, req.StartTime, staff, provider, uc.settings.Defaults())
	if !window.Contains(interval) {
		uc.logger.Warn("CreateBooking: interval %s is outside working window %s", interval, window)
		return nil, fmt.Errorf("%w: %s is outside %s", ErrOutsideWorkingHours, interval, window)
	}

	booking := &domain.Booking{
		ClientID:      req.ClientID,
		ProviderID:    provider.ID,
		ServiceID:     service.ID,
		StaffID:       req.StaffID,
		CarID:         req.CarID,
		StartTime:     interval.Start,
		EndTime:       interval.End,
		Status:        domain.StatusPending,
		ServiceName:   service.Name,
		ServicePrice:  service.Price,
		Notes:         req.Notes,
		ClientComment: req.ClientComment,
	}

	// 6. Проверка занятости и вставка в одной транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.guard.Ensure(txCtx, booking.Resource(), interval, nil); err != nil {
			return err
		}

		b, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		if isSlotConflict(err) {
			uc.logger.Warn("CreateBooking: resource %s is busy for %s", booking.Resource(), interval)
			if uc.metrics != nil {
				uc.metrics.IncSlotConflict(operation)
			}
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s for client=%s", created.ID, created.ClientID)

	if uc.metrics != nil {
		uc.metrics.IncBookingTransition(string(domain.EventCreate))
	}
	uc.trigger.Notify(created, domain.EventCreate, domain.RoleClient)

	return fromDomain(created), nil
}

func (uc *UseCase) checkCar(ctx context.Context, req *Request) error {
	owns, err := uc.userClient.OwnsCar(ctx, req.ClientID, *req.CarID)
	if err != nil {
		if errors.Is(err, userClient.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: car id=%s not found", *req.CarID)
			return ErrCarNotFound
		}
		uc.logger.Error("CreateBooking: failed to check car id=%s: %v", *req.CarID, err)
		return fmt.Errorf("%w: failed to check car: %v", ErrInternal, err)
	}
	if !owns {
		uc.logger.Warn("CreateBooking: car id=%s is not owned by client=%s", *req.CarID, req.ClientID)
		return ErrCarNotOwned
	}
	return nil
}

func (uc *UseCase) getStaff(ctx context.Context, staffID uuid.UUID, service *domain.Service, provider *domain.Provider) (*domain.Staff, error) {
	staff, err := uc.catalog.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%s not found", staffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if staff.ProviderID != provider.ID {
		uc.logger.Warn("CreateBooking: staff id=%s does not belong to provider=%s", staffID, provider.ID)
		return nil, ErrStaffNotFound
	}
	if !staff.IsEligibleFor(service.CategoryName) {
		uc.logger.Warn("CreateBooking: staff id=%s is not eligible for category=%q", staffID, service.CategoryName)
		return nil, ErrStaffNotEligible
	}
	return staff, nil
}

// isSlotConflict: занятость по проверке, по exclusion constraint
// или исчерпанные повторы из-за конкурентной записи
func isSlotConflict(err error) bool {
	return errors.Is(err, conflictguard.ErrSlotConflict) ||
		errors.Is(err, bookingRepo.ErrSlotNotAvailable) ||
		errors.Is(err, txmanager.ErrRetriesExhausted)
}
