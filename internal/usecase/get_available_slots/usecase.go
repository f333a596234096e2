package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sellerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// maxParallelFetch ограничивает число одновременных запросов занятости
const maxParallelFetch = 8

// resource ресурс, для которого считаются слоты
type resource struct {
	key   domain.Resource
	staff *domain.Staff // nil = провайдер
}

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogClient
	settings     SettingsResolver
	zone         timewindow.Zone
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogClient,
	settings SettingsResolver,
	zone timewindow.Zone,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		settings:     settings,
		zone:         zone,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Только чтение, без транзакции: итоговую проверку делает создание записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, staff=%v, date=%s",
		req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу и провайдера
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	provider, err := uc.catalog.GetProvider(ctx, service.ProviderID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%s not found", service.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%s: %v", service.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Действующие настройки и проверка даты
	settings, err := uc.settings.Resolve(ctx, provider.ID, &service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve settings: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	if err := validateDate(uc.zone, req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Определяем ресурсы
	resources, err := uc.resources(ctx, req, service, provider)
	if err != nil {
		return nil, err
	}

	// 5. Занятость каждого ресурса за сутки
	busy, err := uc.busyIntervals(ctx, req.Date, resources)
	if err != nil {
		return nil, err
	}

	// 6. Считаем слоты
	duration := service.Duration()
	notBefore := now.Add(settings.MinNotice())
	defaults := uc.settings.Defaults()

	slots := make([]Slot, 0)
	for i, r := range resources {
		window := domain.WorkingWindow(uc.zone, req.Date, r.staff, provider, defaults)
		for _, iv := range computeSlots(window, duration, settings.SlotStep(), notBefore, busy[i]) {
			slot := Slot{Start: iv.Start, End: iv.End}
			if r.staff != nil {
				staffID := r.staff.ID
				slot.StaffID = &staffID
				slot.StaffName = r.staff.FullName()
			}
			slots = append(slots, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots over %d resources for service=%s, date=%s",
		len(slots), len(resources), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            uc.zone.Date(req.Date),
		ServiceID:       service.ID,
		ProviderID:      provider.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// resources возвращает запрошенного мастера, иначе всех подходящих мастеров,
// иначе сам провайдер как единственный ресурс
func (uc *UseCase) resources(ctx context.Context, req *Request, service *domain.Service, provider *domain.Provider) ([]resource, error) {
	if req.StaffID != nil {
		staff, err := uc.catalog.GetStaff(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, sellerClient.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%s not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%s: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if staff.ProviderID != provider.ID {
			uc.logger.Warn("GetAvailableSlots: staff id=%s does not belong to provider=%s", staff.ID, provider.ID)
			return nil, ErrStaffNotFound
		}
		if !staff.IsEligibleFor(service.CategoryName) {
			uc.logger.Warn("GetAvailableSlots: staff id=%s is not eligible for category=%q", staff.ID, service.CategoryName)
			return nil, ErrStaffNotEligible
		}
		return []resource{{key: domain.StaffResource(provider.ID, staff.ID), staff: staff}}, nil
	}

	staff, err := uc.catalog.ListEligibleStaff(ctx, provider.ID, service.CategoryName)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list staff of provider=%s: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	if len(staff) == 0 {
		uc.logger.Info("GetAvailableSlots: no eligible staff for provider=%s, using provider capacity", provider.ID)
		return []resource{{key: domain.ProviderResource(provider.ID)}}, nil
	}

	out := make([]resource, 0, len(staff))
	for _, s := range staff {
		out = append(out, resource{key: domain.StaffResource(provider.ID, s.ID), staff: s})
	}
	return out, nil
}

// busyIntervals загружает живые записи ресурсов параллельно, сохраняя порядок
func (uc *UseCase) busyIntervals(ctx context.Context, date time.Time, resources []resource) ([][]timewindow.Interval, error) {
	dayStart, dayEnd := uc.zone.DayBounds(date)
	busy := make([][]timewindow.Interval, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetch)
	for i, r := range resources {
		g.Go(func() error {
			bookings, err := uc.bookingRepo.ListLiveOverlapping(gctx, r.key.Key(), dayStart, dayEnd, nil)
			if err != nil {
				return fmt.Errorf("resource %s: %w", r.key, err)
			}
			intervals := make([]timewindow.Interval, 0, len(bookings))
			for _, b := range bookings {
				intervals = append(intervals, b.Interval())
			}
			busy[i] = intervals
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	return busy, nil
}
