// Package conflictguard decides whether a resource is free for an interval
// inside the transaction that is about to write a booking.
package conflictguard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

var (
	// ErrSlotConflict возвращается, когда интервал пересекается с живой записью
	ErrSlotConflict = fmt.Errorf("conflictguard: resource is busy: %w", domain.ErrSlotConflict)

	// ErrNoTransaction возвращается при вызове вне транзакции
	ErrNoTransaction = errors.New("conflictguard: must run inside a transaction")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("conflictguard: internal error")
)

// Repository выборка живых записей ресурса
type Repository interface {
	LockResource(ctx context.Context, resourceKey string) error
	ListLiveOverlapping(ctx context.Context, resourceKey string, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error)
}

// Guard проверяет занятость ресурса
type Guard struct {
	repo Repository
}

// New создает Guard
func New(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// IsResourceFree возвращает true, если ни одна живая запись ресурса (кроме excludeID)
// не пересекается с interval. Ресурс блокируется до конца транзакции.
func (g *Guard) IsResourceFree(ctx context.Context, resource domain.Resource, interval timewindow.Interval, excludeID *uuid.UUID) (bool, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return false, ErrNoTransaction
	}

	key := resource.Key()
	if err := g.repo.LockResource(ctx, key); err != nil {
		// ошибку драйвера сохраняем: по ней txmanager решает о повторе
		return false, fmt.Errorf("%w: IsResourceFree - lock %s: %w", ErrInternal, key, err)
	}

	busy, err := g.repo.ListLiveOverlapping(ctx, key, interval.Start, interval.End, excludeID)
	if err != nil {
		return false, fmt.Errorf("%w: IsResourceFree - list %s: %w", ErrInternal, key, err)
	}

	for _, b := range busy {
		if b.Interval().Overlaps(interval) {
			return false, nil
		}
	}
	return true, nil
}

// Ensure возвращает ErrSlotConflict, если ресурс занят
func (g *Guard) Ensure(ctx context.Context, resource domain.Resource, interval timewindow.Interval, excludeID *uuid.UUID) error {
	free, err := g.IsResourceFree(ctx, resource, interval, excludeID)
	if err != nil {
		return err
	}
	if !free {
		return ErrSlotConflict
	}
	return nil
}
