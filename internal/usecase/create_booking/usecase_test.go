package create_booking

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflictguard"
	"github.com/m04kA/SMC-AppointmentService/internal/service/notify"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

var now = time.Date(2030, 3, 14, 8, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2030, 3, 15, h, m, 0, 0, time.UTC)
}

type fixture struct {
	uc       *UseCase
	store    *testutil.BookingStore
	catalog  *testutil.Catalog
	users    *testutil.Users
	notifier *testutil.RecordingNotifier
	trigger  *notify.Trigger
	metrics  *metrics.Metrics
	provider *domain.Provider
	service  *domain.Service
	client   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewBookingStore()
	catalog := testutil.NewCatalog()
	users := testutil.NewUsers()
	notifier := &testutil.RecordingNotifier{}
	clock := testutil.FixedClock{T: now}
	zone := timewindow.NewZone(time.UTC)
	log := logger.NewNop()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")

	provider := catalog.AddProvider(&domain.Provider{Name: "Шиномонтаж"})
	service := catalog.AddService(&domain.Service{
		ProviderID:      provider.ID,
		Name:            "Замена шин",
		CategoryName:    "tires",
		DurationMinutes: 60,
		Price:           2500,
	})

	resolver := settingsService.NewService(testutil.NewSettingsStore(), catalog, domain.DefaultSchedulingDefaults(), log)
	trigger := notify.NewTrigger(notifier, clock, zone, log)

	uc := NewUseCase(store, conflictguard.New(store), catalog, users, resolver, store, trigger, m, zone, log)
	uc.timeProvider = clock

	return &fixture{
		uc:       uc,
		store:    store,
		catalog:  catalog,
		users:    users,
		notifier: notifier,
		trigger:  trigger,
		metrics:  m,
		provider: provider,
		service:  service,
		client:   uuid.New(),
	}
}

func (f *fixture) request(start time.Time) *Request {
	return &Request{ClientID: f.client, ServiceID: f.service.ID, StartTime: start}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture(t)
	car := f.users.AddCar(f.client)
	req := f.request(at(10, 0))
	req.CarID = &car
	req.Notes = ptr.Ptr("летняя резина в багажнике")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, at(10, 0), resp.StartTime)
	assert.Equal(t, at(11, 0), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Замена шин", resp.ServiceName)
	assert.Equal(t, 2500.0, resp.ServicePrice)
	assert.Equal(t, f.provider.ID, resp.ProviderID)

	stored := f.store.Get(resp.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "летняя резина в багажнике", *stored.Notes)

	f.trigger.Wait()
	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, f.provider.ID, sent[0].RecipientID)
	assert.Equal(t, domain.EventCreate, sent[0].Event)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.BookingTransitions.WithLabelValues("test", "create")))
}

func TestExecute_OverlapIsRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request(at(10, 30)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.SlotConflicts.WithLabelValues("test", "create")))

	_, err = f.uc.Execute(context.Background(), f.request(at(11, 0)))
	assert.NoError(t, err, "touching interval is free")
}

func TestExecute_CancelledBookingFreesResource(t *testing.T) {
	f := newFixture(t)
	f.store.Put(&domain.Booking{
		ProviderID: f.provider.ID,
		StartTime:  at(10, 0),
		EndTime:    at(11, 0),
		Status:     domain.StatusCancelled,
	})

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	f := newFixture(t)
	f.store.EnforceExclusion = true

	const workers = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			req := f.request(at(10, 0))
			req.ClientID = uuid.New()
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}()
	}
	close(start)
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, domain.ErrSlotConflict):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, f.store.All(), 1)
}

func TestExecute_StaffCapacityIsIndependent(t *testing.T) {
	f := newFixture(t)
	anna := f.catalog.AddStaff(&domain.Staff{ProviderID: f.provider.ID, FirstName: "Анна", Specialization: "tires"})
	boris := f.catalog.AddStaff(&domain.Staff{ProviderID: f.provider.ID, FirstName: "Борис", Specialization: domain.UniversalSpecialization})

	for _, id := range []uuid.UUID{anna.ID, boris.ID} {
		req := f.request(at(10, 0))
		req.StaffID = &id
		_, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
	}

	req := f.request(at(10, 0))
	req.StaffID = &anna.ID
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.NoError(t, err, "provider capacity is a separate resource")
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)
	foreignCar := f.users.AddCar(uuid.New())
	missingCar := uuid.New()
	wrongStaff := f.catalog.AddStaff(&domain.Staff{ProviderID: f.provider.ID, Specialization: "wash"})
	foreignStaff := f.catalog.AddStaff(&domain.Staff{ProviderID: uuid.New(), Specialization: "tires"})
	f.provider.WorkEndHour = ptr.Ptr(17)

	tests := []struct {
		name     string
		mutate   func(r *Request)
		wantErr  error
		wantKind error
	}{
		{"unknown service", func(r *Request) { r.ServiceID = uuid.New() }, ErrServiceNotFound, domain.ErrNotFound},
		{"foreign car", func(r *Request) { r.CarID = &foreignCar }, ErrCarNotOwned, domain.ErrForbidden},
		{"missing car", func(r *Request) { r.CarID = &missingCar }, ErrCarNotFound, domain.ErrNotFound},
		{"staff of another provider", func(r *Request) { r.StaffID = &foreignStaff.ID }, ErrStaffNotFound, domain.ErrNotFound},
		{"staff not eligible", func(r *Request) { r.StaffID = &wrongStaff.ID }, ErrStaffNotEligible, domain.ErrValidation},
		{"in the past", func(r *Request) { r.StartTime = now.Add(-time.Hour) }, ErrStartInPast, domain.ErrValidation},
		{"before opening", func(r *Request) { r.StartTime = at(8, 30) }, ErrOutsideWorkingHours, domain.ErrValidation},
		{"past closing", func(r *Request) { r.StartTime = at(16, 30) }, ErrOutsideWorkingHours, domain.ErrValidation},
		{"missing start", func(r *Request) { r.StartTime = time.Time{} }, ErrInvalidInput, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(at(10, 0))
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
	assert.Empty(t, f.store.All())
}

func TestExecute_NoDoubleBookingOverRandomIntervals(t *testing.T) {
	f := newFixture(t)
	rnd := rand.New(rand.NewSource(20300315))

	durations := []int{15, 30, 45, 60, 90}
	services := make([]*domain.Service, 0, len(durations))
	for _, d := range durations {
		services = append(services, f.catalog.AddService(&domain.Service{
			ProviderID:      f.provider.ID,
			CategoryName:    "tires",
			DurationMinutes: d,
		}))
	}

	accepted := make([]timewindow.Interval, 0)
	for i := 0; i < 300; i++ {
		service := services[rnd.Intn(len(services))]
		start := at(9, 0).Add(time.Duration(rnd.Intn(9*60/5)) * 5 * time.Minute)
		candidate := timewindow.NewInterval(start, service.Duration())
		inWindow := !candidate.End.After(at(18, 0))

		_, err := f.uc.Execute(context.Background(), &Request{
			ClientID:  uuid.New(),
			ServiceID: service.ID,
			StartTime: start,
		})

		switch {
		case !inWindow:
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
		case timewindow.OverlapsAny(candidate, accepted):
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		default:
			require.NoError(t, err)
			accepted = append(accepted, candidate)
		}
	}

	all := f.store.All()
	assert.Len(t, all, len(accepted))
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			assert.False(t, all[i].Interval().Overlaps(all[j].Interval()),
				"%s overlaps %s", all[i].Interval(), all[j].Interval())
		}
	}
}
