// Package testutil contains in-memory fakes of the storage and integration
// layers for unit tests.
package testutil

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// fakeTx marks a context as transactional for dbmetrics.IsInTransaction.
type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...any) (sql.Result, error) { return nil, nil }
func (fakeTx) QueryContext(context.Context, string, ...any) (*sql.Rows, error) { return nil, nil }
func (fakeTx) QueryRowContext(context.Context, string, ...any) *sql.Row      { return nil }
func (fakeTx) Commit() error                                                  { return nil }
func (fakeTx) Rollback() error                                                { return nil }

// BookingStore is an in-memory booking repository and transaction manager.
// Transactions are fully serialized and rolled back on error, which models
// SERIALIZABLE isolation for a single process.
type BookingStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	bookings map[uuid.UUID]*domain.Booking
	seq      int

	// EnforceExclusion emulates the bookings_no_overlap constraint.
	EnforceExclusion bool

	// BeforeWrite, when set, runs inside Create and Update before the write.
	BeforeWrite func()

	Locks []string
}

// NewBookingStore returns an empty store.
func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[uuid.UUID]*domain.Booking)}
}

// Put inserts a booking directly, bypassing all checks.
func (s *BookingStore) Put(b *domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.seq++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Date(2000, 1, 1, 0, 0, s.seq, 0, time.UTC)
	}
	s.bookings[b.ID] = clone(b)
	return b
}

// All returns copies of every stored booking.
func (s *BookingStore) All() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, clone(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// Get returns a copy of the booking or nil.
func (s *BookingStore) Get(id uuid.UUID) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		return clone(b)
	}
	return nil
}

func (s *BookingStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

func (s *BookingStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

func (s *BookingStore) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

func (s *BookingStore) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	if err := fn(dbmetrics.WithTx(ctx, fakeTx{})); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *BookingStore) snapshot() map[uuid.UUID]*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[uuid.UUID]*domain.Booking, len(s.bookings))
	for id, b := range s.bookings {
		cp[id] = clone(b)
	}
	return cp
}

func (s *BookingStore) restore(snapshot map[uuid.UUID]*domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snapshot
}

func (s *BookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if s.BeforeWrite != nil {
		s.BeforeWrite()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.EnforceExclusion && s.overlapsLocked(b, b.ID) {
		return nil, bookingRepo.ErrSlotNotAvailable
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.seq++
	b.CreatedAt = time.Date(2000, 1, 1, 0, 0, s.seq, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt
	s.bookings[b.ID] = clone(b)
	return clone(b), nil
}

func (s *BookingStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return clone(b), nil
}

func (s *BookingStore) LockResource(_ context.Context, resourceKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Locks = append(s.Locks, resourceKey)
	return nil
}

func (s *BookingStore) ListLiveOverlapping(
	_ context.Context,
	resourceKey string,
	start, end time.Time,
	excludeID *uuid.UUID,
) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.Resource().Key() != resourceKey || !b.IsLive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if timewindow.Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *BookingStore) ListByClient(_ context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, clone(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return page(out, filter.Limit, filter.Offset), nil
}

func (s *BookingStore) ListByProvider(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.ProviderID != filter.ProviderID {
			continue
		}
		if filter.StaffID != nil && (b.StaffID == nil || *b.StaffID != *filter.StaffID) {
			continue
		}
		if filter.From != nil && b.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && !b.IsLive() {
			continue
		}
		out = append(out, clone(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return page(out, filter.Limit, filter.Offset), nil
}

func (s *BookingStore) Update(_ context.Context, b *domain.Booking) error {
	if s.BeforeWrite != nil {
		s.BeforeWrite()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if s.EnforceExclusion && b.IsLive() && s.overlapsLocked(b, b.ID) {
		return bookingRepo.ErrSlotNotAvailable
	}
	s.seq++
	b.UpdatedAt = time.Date(2000, 1, 1, 0, 0, s.seq, 0, time.UTC)
	s.bookings[b.ID] = clone(b)
	return nil
}

func (s *BookingStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *BookingStore) overlapsLocked(b *domain.Booking, self uuid.UUID) bool {
	key := b.Resource().Key()
	for _, other := range s.bookings {
		if other.ID == self || !other.IsLive() || other.Resource().Key() != key {
			continue
		}
		if timewindow.Overlaps(b.StartTime, b.EndTime, other.StartTime, other.EndTime) {
			return true
		}
	}
	return false
}

func page(in []*domain.Booking, limit, offset int) []*domain.Booking {
	if offset >= len(in) {
		return []*domain.Booking{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

func clone(b *domain.Booking) *domain.Booking {
	cp := *b
	return &cp
}
