package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	sellerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflictguard"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const operationReschedule = "reschedule"

// Update изменяет заметки, комментарий или время живой записи
// Доступно клиенту записи, владельцу провайдера и администратору
// При переносе длительность берется из текущей услуги, а занятость проверяется
// в той же сериализуемой транзакции, что и запись
func (s *Service) Update(ctx context.Context, id uuid.UUID, actor domain.Actor, patch domain.BookingPatch) (*models.BookingResponse, error) {
	s.logger.Info("Update: booking id=%s by user=%s", id, actor.UserID)

	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	booking, err := s.load(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, "Update", booking, actor, domain.RoleClient, domain.RoleProvider, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if !booking.IsLive() {
		s.logger.Warn("Update: booking id=%s is %s", id, booking.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrNotEditable, booking.Status)
	}

	var interval *timewindow.Interval
	if patch.Reschedules(booking) {
		iv, err := s.newInterval(ctx, booking, patch)
		if err != nil {
			return nil, err
		}
		interval = &iv
	}

	run := s.txManager.Do
	if interval != nil {
		run = s.txManager.DoSerializable
	}

	var updated *domain.Booking
	err = run(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !b.IsLive() {
			return fmt.Errorf("%w: status is %s", ErrNotEditable, b.Status)
		}

		if patch.Notes != nil {
			b.Notes = patch.Notes
		}
		if patch.ClientComment != nil {
			b.ClientComment = patch.ClientComment
		}
		if interval != nil {
			if err := s.guard.Ensure(txCtx, b.Resource(), *interval, &b.ID); err != nil {
				return err
			}
			b.StartTime = interval.Start
			b.EndTime = interval.End
		}

		if err := s.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotEditable):
			s.logger.Warn("Update: booking id=%s: %v", id, err)
			return nil, err
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Update: booking id=%s disappeared", id)
			return nil, ErrBookingNotFound
		case isSlotConflict(err):
			s.logger.Warn("Update: new time for booking id=%s is busy", id)
			s.recordConflict(operationReschedule)
			return nil, ErrSlotNotAvailable
		default:
			s.logger.Error("Update: transaction failed for booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated booking id=%s", id)
	return models.FromDomainBooking(updated), nil
}

// Remove удаляет запись безвозвратно
// Доступно владельцу провайдера и администратору
// Клиент получает уведомление, только если запись была активной
func (s *Service) Remove(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	s.logger.Info("Remove: booking id=%s by user=%s", id, actor.UserID)

	booking, err := s.load(ctx, "Remove", id)
	if err != nil {
		return err
	}

	role, err := s.authorize(ctx, "Remove", booking, actor, domain.RoleProvider, domain.RoleAdmin)
	if err != nil {
		return err
	}

	var removed *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			return err
		}
		removed = b
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Remove: booking id=%s disappeared", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Remove: transaction failed for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Remove - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: successfully removed booking id=%s", id)
	s.recordTransition(domain.EventRemove)
	if removed.IsLive() {
		s.trigger.Notify(removed, domain.EventRemove, role)
	}
	return nil
}

// newInterval вычисляет новый интервал по текущей длительности услуги
// и проверяет его по тем же правилам, что и при создании записи:
// текущее время, настройки расписания и рабочее окно ресурса
func (s *Service) newInterval(ctx context.Context, booking *domain.Booking, patch domain.BookingPatch) (timewindow.Interval, error) {
	start := *patch.StartTime
	now := s.timeProvider.Now()

	if start.Before(now) {
		return timewindow.Interval{}, ErrStartInPast
	}

	settings, err := s.settings.Resolve(ctx, booking.ProviderID, &booking.ServiceID)
	if err != nil {
		s.logger.Error("Update: failed to resolve settings: %v", err)
		return timewindow.Interval{}, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}
	if err := s.checkBookingWindow(start, now, settings); err != nil {
		s.logger.Warn("Update: start %s rejected: %v", start, err)
		return timewindow.Interval{}, err
	}

	service, err := s.catalog.GetService(ctx, booking.ServiceID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found", booking.ServiceID)
			return timewindow.Interval{}, ErrServiceNotFound
		}
		s.logger.Error("Update: failed to get service id=%s: %v", booking.ServiceID, err)
		return timewindow.Interval{}, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		return timewindow.Interval{}, fmt.Errorf("%w: service has invalid duration", ErrInternal)
	}

	provider, err := s.getProvider(ctx, "Update", booking.ProviderID)
	if err != nil {
		return timewindow.Interval{}, err
	}

	var staff *domain.Staff
	if booking.StaffID != nil {
		staff, err = s.catalog.GetStaff(ctx, *booking.StaffID)
		if err != nil && !errors.Is(err, sellerClient.ErrStaffNotFound) {
			s.logger.Error("Update: failed to get staff id=%s: %v", *booking.StaffID, err)
			return timewindow.Interval{}, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		// уволенный мастер: окно по часам провайдера
	}

	interval := timewindow.NewInterval(start, service.Duration())
	window := domain.WorkingWindow(s.zone, start, staff, provider, s.settings.Defaults())
	if !window.Contains(interval) {
		s.logger.Warn("Update: interval %s is outside working window %s", interval, window)
		return timewindow.Interval{}, fmt.Errorf("%w: %s is outside %s", ErrOutsideWorkingHours, interval, window)
	}
	return interval, nil
}

// checkBookingWindow проверяет ограничения advanceBookingDays и minBookingNoticeMinutes
func (s *Service) checkBookingWindow(start, now time.Time, settings *domain.ScheduleSettings) error {
	if settings.HasAdvanceBookingLimit() {
		maxDate := s.zone.Date(now).AddDate(0, 0, settings.AdvanceBookingDays)
		if s.zone.Date(start).After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
		}
	}
	if start.Before(now.Add(settings.MinNotice())) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, settings.MinBookingNoticeMinutes)
	}
	return nil
}

func validatePatch(patch domain.BookingPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if patch.Notes != nil && len([]rune(*patch.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if patch.ClientComment != nil && len([]rune(*patch.ClientComment)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: clientComment must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if patch.StartTime != nil && patch.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime must not be empty", ErrInvalidInput)
	}
	return nil
}

func isSlotConflict(err error) bool {
	return errors.Is(err, conflictguard.ErrSlotConflict) ||
		errors.Is(err, bookingRepo.ErrSlotNotAvailable) ||
		errors.Is(err, txmanager.ErrRetriesExhausted)
}
