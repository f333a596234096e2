package conflictguard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

func at(h, m int) time.Time {
	return time.Date(2030, 3, 15, h, m, 0, 0, time.UTC)
}

func TestGuard_RequiresTransaction(t *testing.T) {
	g := New(testutil.NewBookingStore())
	_, err := g.IsResourceFree(context.Background(), domain.ProviderResource(uuid.New()),
		timewindow.Interval{Start: at(10, 0), End: at(11, 0)}, nil)
	assert.ErrorIs(t, err, ErrNoTransaction)
}

func TestGuard_IsResourceFree(t *testing.T) {
	store := testutil.NewBookingStore()
	g := New(store)

	providerID := uuid.New()
	staffID := uuid.New()
	existing := store.Put(&domain.Booking{
		ProviderID: providerID,
		StaffID:    &staffID,
		StartTime:  at(10, 0),
		EndTime:    at(11, 0),
		Status:     domain.StatusConfirmed,
	})
	store.Put(&domain.Booking{
		ProviderID: providerID,
		StaffID:    &staffID,
		StartTime:  at(12, 0),
		EndTime:    at(13, 0),
		Status:     domain.StatusCancelled,
	})

	staff := domain.StaffResource(providerID, staffID)

	tests := []struct {
		name     string
		resource domain.Resource
		interval timewindow.Interval
		exclude  *uuid.UUID
		want     bool
	}{
		{"overlap", staff, timewindow.Interval{Start: at(10, 30), End: at(11, 30)}, nil, false},
		{"touching end", staff, timewindow.Interval{Start: at(11, 0), End: at(12, 0)}, nil, true},
		{"touching start", staff, timewindow.Interval{Start: at(9, 0), End: at(10, 0)}, nil, true},
		{"cancelled ignored", staff, timewindow.Interval{Start: at(12, 0), End: at(13, 0)}, nil, true},
		{"self excluded", staff, timewindow.Interval{Start: at(10, 0), End: at(11, 0)}, &existing.ID, true},
		{"other resource", domain.ProviderResource(providerID), timewindow.Interval{Start: at(10, 0), End: at(11, 0)}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			err := store.Do(context.Background(), func(ctx context.Context) error {
				var err error
				got, err = g.IsResourceFree(ctx, tt.resource, tt.interval, tt.exclude)
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuard_EnsureLocksResource(t *testing.T) {
	store := testutil.NewBookingStore()
	g := New(store)
	providerID := uuid.New()
	store.Put(&domain.Booking{
		ProviderID: providerID,
		StartTime:  at(10, 0),
		EndTime:    at(11, 0),
		Status:     domain.StatusPending,
	})

	res := domain.ProviderResource(providerID)
	err := store.Do(context.Background(), func(ctx context.Context) error {
		return g.Ensure(ctx, res, timewindow.Interval{Start: at(10, 59), End: at(11, 30)}, nil)
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, []string{res.Key()}, store.Locks)
}
