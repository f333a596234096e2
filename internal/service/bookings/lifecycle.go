package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// transition описывает применение события жизненного цикла
type transition struct {
	op      string
	event   domain.BookingEvent
	allowed []domain.ActorRole
	apply   func(b *domain.Booking, now time.Time)
}

// Confirm подтверждает ожидающую запись
// Доступно владельцу провайдера и администратору
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	return s.transit(ctx, id, actor, transition{
		op:      "Confirm",
		event:   domain.EventConfirm,
		allowed: []domain.ActorRole{domain.RoleProvider, domain.RoleAdmin},
		apply: func(b *domain.Booking, now time.Time) {
			b.ConfirmedAt = &now
		},
	})
}

// Reject отклоняет ожидающую запись, причина опциональна
// Доступно владельцу провайдера и администратору
func (s *Service) Reject(ctx context.Context, id uuid.UUID, actor domain.Actor, reason *string) (*models.BookingResponse, error) {
	if err := validateReason(reason, domain.MaxRejectionReasonLength); err != nil {
		return nil, err
	}

	return s.transit(ctx, id, actor, transition{
		op:      "Reject",
		event:   domain.EventReject,
		allowed: []domain.ActorRole{domain.RoleProvider, domain.RoleAdmin},
		apply: func(b *domain.Booking, _ time.Time) {
			b.RejectionReason = reason
		},
	})
}

// Cancel отменяет живую запись
// Доступно клиенту записи, владельцу провайдера и администратору
// Уведомление получает противоположная сторона
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor domain.Actor, reason *string) (*models.BookingResponse, error) {
	if err := validateReason(reason, domain.MaxCancellationReasonLength); err != nil {
		return nil, err
	}

	return s.transit(ctx, id, actor, transition{
		op:      "Cancel",
		event:   domain.EventCancel,
		allowed: []domain.ActorRole{domain.RoleClient, domain.RoleProvider, domain.RoleAdmin},
		apply: func(b *domain.Booking, now time.Time) {
			b.CancelledAt = &now
			b.CancellationReason = reason
		},
	})
}

// Complete отмечает подтвержденную запись выполненной
// Доступно владельцу провайдера и администратору
func (s *Service) Complete(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	return s.transit(ctx, id, actor, transition{
		op:      "Complete",
		event:   domain.EventComplete,
		allowed: []domain.ActorRole{domain.RoleProvider, domain.RoleAdmin},
	})
}

// transit проверяет права, применяет переход под блокировкой строки
// и после коммита отправляет уведомление
func (s *Service) transit(ctx context.Context, id uuid.UUID, actor domain.Actor, t transition) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%s by user=%s", t.op, id, actor.UserID)

	booking, err := s.load(ctx, t.op, id)
	if err != nil {
		return nil, err
	}

	role, err := s.authorize(ctx, t.op, booking, actor, t.allowed...)
	if err != nil {
		return nil, err
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// перечитываем с FOR UPDATE: статус мог измениться после проверки прав
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		next, err := domain.NextStatus(b.Status, t.event)
		if err != nil {
			return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, t.event, b.Status)
		}

		b.Status = next
		if t.apply != nil {
			t.apply(b, s.timeProvider.Now())
		}

		if err := s.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("%s: booking id=%s: %v", t.op, id, err)
			return nil, err
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("%s: booking id=%s disappeared", t.op, id)
			return nil, ErrBookingNotFound
		default:
			s.logger.Error("%s: transaction failed for booking id=%s: %v", t.op, id, err)
			return nil, fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, t.op, err)
		}
	}

	s.logger.Info("%s: booking id=%s is now %s", t.op, id, updated.Status)
	s.recordTransition(t.event)
	s.trigger.Notify(updated, t.event, role)

	return models.FromDomainBooking(updated), nil
}

func validateReason(reason *string, maxLen int) error {
	if reason != nil && len([]rune(*reason)) > maxLen {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, maxLen)
	}
	return nil
}
