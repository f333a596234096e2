package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

var day = time.Date(2030, 3, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2030, 3, 15, h, m, 0, 0, time.UTC)
}

type fixture struct {
	uc       *UseCase
	store    *testutil.BookingStore
	catalog  *testutil.Catalog
	settings *testutil.SettingsStore
	provider *domain.Provider
}

func newFixture(now time.Time) *fixture {
	store := testutil.NewBookingStore()
	catalog := testutil.NewCatalog()
	settings := testutil.NewSettingsStore()
	log := logger.NewNop()

	provider := catalog.AddProvider(&domain.Provider{Name: "Детейлинг"})
	resolver := settingsService.NewService(settings, catalog, domain.DefaultSchedulingDefaults(), log)

	uc := NewUseCase(store, catalog, resolver, timewindow.NewZone(time.UTC), log)
	uc.timeProvider = testutil.FixedClock{T: now}

	return &fixture{uc: uc, store: store, catalog: catalog, settings: settings, provider: provider}
}

func (f *fixture) addService(minutes int, category string) *domain.Service {
	return f.catalog.AddService(&domain.Service{
		ProviderID:      f.provider.ID,
		Name:            "Услуга",
		CategoryName:    category,
		DurationMinutes: minutes,
	})
}

func (f *fixture) addStaff(first, specialization string) *domain.Staff {
	return f.catalog.AddStaff(&domain.Staff{
		ProviderID:     f.provider.ID,
		FirstName:      first,
		LastName:       "Иванов",
		Specialization: specialization,
	})
}

func starts(slots []Slot) []time.Time {
	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestExecute_FullDayHourlyService(t *testing.T) {
	f := newFixture(day.Add(-12 * time.Hour))
	service := f.addService(60, "wash")

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 17)
	assert.Equal(t, at(9, 0), resp.Slots[0].Start)
	assert.Equal(t, at(17, 0), resp.Slots[16].Start)
	assert.Equal(t, at(18, 0), resp.Slots[16].End)
	assert.Nil(t, resp.Slots[0].StaffID, "no staff means provider-level slots")
	assert.Equal(t, f.provider.ID, resp.ProviderID)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ExistingBookingBlocksOverlappingCandidates(t *testing.T) {
	f := newFixture(day.Add(-12 * time.Hour))
	service := f.addService(30, "wash")
	f.store.Put(&domain.Booking{
		ProviderID: f.provider.ID,
		StartTime:  at(10, 0),
		EndTime:    at(11, 0),
		Status:     domain.StatusConfirmed,
	})
	f.store.Put(&domain.Booking{
		ProviderID: f.provider.ID,
		StartTime:  at(12, 0),
		EndTime:    at(13, 0),
		Status:     domain.StatusCancelled,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day})
	require.NoError(t, err)

	got := starts(resp.Slots)
	assert.Len(t, got, 16)
	assert.Contains(t, got, at(9, 30))
	assert.Contains(t, got, at(11, 0))
	assert.Contains(t, got, at(12, 0), "cancelled booking frees the slot")
	assert.NotContains(t, got, at(10, 0))
	assert.NotContains(t, got, at(10, 30))
}

func TestExecute_StaffOrderAndHours(t *testing.T) {
	f := newFixture(day.Add(-12 * time.Hour))
	service := f.addService(60, "polish")
	first := f.addStaff("Анна", "polish")
	f.addStaff("Борис", "wash")
	second := f.addStaff("Вера", domain.UniversalSpecialization)
	second.WorkStartHour = ptr.Ptr(16)

	f.store.Put(&domain.Booking{
		ProviderID: f.provider.ID,
		StaffID:    &first.ID,
		StartTime:  at(9, 0),
		EndTime:    at(17, 0),
		Status:     domain.StatusPending,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, first.ID, *resp.Slots[0].StaffID)
	assert.Equal(t, at(17, 0), resp.Slots[0].Start)
	assert.Equal(t, "Анна Иванов", resp.Slots[0].StaffName)

	assert.Equal(t, second.ID, *resp.Slots[1].StaffID)
	assert.Equal(t, at(16, 0), resp.Slots[1].Start)
	assert.Equal(t, at(16, 30), resp.Slots[2].Start)
	assert.Equal(t, at(17, 0), resp.Slots[3].Start)
}

func TestExecute_RequestedStaff(t *testing.T) {
	f := newFixture(day.Add(-12 * time.Hour))
	service := f.addService(60, "polish")
	eligible := f.addStaff("Анна", "polish")
	wrong := f.addStaff("Борис", "wash")
	foreign := f.catalog.AddStaff(&domain.Staff{ProviderID: uuid.New(), Specialization: "polish"})

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day, StaffID: &eligible.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 17)
	for _, s := range resp.Slots {
		assert.Equal(t, eligible.ID, *s.StaffID)
	}

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day, StaffID: &wrong.ID})
	assert.ErrorIs(t, err, ErrStaffNotEligible)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day, StaffID: &foreign.ID})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	missing := uuid.New()
	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day, StaffID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_TodayRespectsMinimumNotice(t *testing.T) {
	f := newFixture(at(12, 10))
	service := f.addService(60, "wash")
	_, err := f.settings.Upsert(context.Background(), &domain.ScheduleSettings{
		ProviderID:              f.provider.ID,
		SlotStepMinutes:         30,
		MinBookingNoticeMinutes: 30,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: day})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, at(13, 0), resp.Slots[0].Start)
}

func TestExecute_DateValidation(t *testing.T) {
	f := newFixture(day.Add(-12 * time.Hour))
	service := f.addService(60, "wash")
	_, err := f.settings.Upsert(context.Background(), &domain.ScheduleSettings{
		ProviderID:         f.provider.ID,
		SlotStepMinutes:    30,
		AdvanceBookingDays: 7,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"yesterday", day.AddDate(0, 0, -2), ErrInvalidDate},
		{"beyond advance limit", day.AddDate(0, 0, 8), ErrDateTooFarInFuture},
		{"on advance limit", day.AddDate(0, 0, 6), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: tt.date})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_UnknownService(t *testing.T) {
	f := newFixture(day)
	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: uuid.New(), Date: day})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComputeSlots_DurationAndBounds(t *testing.T) {
	window := timewindow.Interval{Start: at(9, 0), End: at(18, 0)}
	busy := []timewindow.Interval{
		{Start: at(9, 40), End: at(10, 20)},
		{Start: at(14, 0), End: at(15, 45)},
	}

	for _, minutes := range []int{15, 30, 45, 60, 90, 120, 540, 541} {
		for _, step := range []int{5, 15, 30, 60} {
			d := time.Duration(minutes) * time.Minute
			for _, s := range computeSlots(window, d, time.Duration(step)*time.Minute, time.Time{}, busy) {
				assert.Equal(t, d, s.Duration())
				assert.True(t, window.Contains(s), "slot %s outside window", s)
				assert.False(t, timewindow.OverlapsAny(s, busy), "slot %s overlaps busy", s)
				assert.Zero(t, s.Start.Sub(window.Start)%(time.Duration(step)*time.Minute))
			}
		}
	}

	assert.Empty(t, computeSlots(window, 541*time.Minute, 30*time.Minute, time.Time{}, nil))
	assert.Len(t, computeSlots(window, 540*time.Minute, 30*time.Minute, time.Time{}, nil), 1)
}
