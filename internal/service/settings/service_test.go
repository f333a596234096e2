package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fixture struct {
	svc      *Service
	store    *testutil.SettingsStore
	provider *domain.Provider
	service  *domain.Service
	owner    uuid.UUID
}

func newFixture() *fixture {
	catalog := testutil.NewCatalog()
	owner := uuid.New()
	provider := catalog.AddProvider(&domain.Provider{Name: "Автомойка", OwnerIDs: []uuid.UUID{owner}, WorkStartHour: ptr.Ptr(8)})
	service := catalog.AddService(&domain.Service{ProviderID: provider.ID, Name: "Мойка", DurationMinutes: 60})
	store := testutil.NewSettingsStore()

	return &fixture{
		svc:      NewService(store, catalog, domain.DefaultSchedulingDefaults(), logger.NewNop()),
		store:    store,
		provider: provider,
		service:  service,
		owner:    owner,
	}
}

func TestService_ResolveFallsBackToDefaults(t *testing.T) {
	f := newFixture()

	got, err := f.svc.Resolve(context.Background(), f.provider.ID, &f.service.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotStepMinutes, got.SlotStepMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, got.AdvanceBookingDays)

	resp, err := f.svc.Get(context.Background(), &models.GetSettingsRequest{ProviderID: f.provider.ID})
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, 8, resp.WorkStartHour)
	assert.Equal(t, domain.DefaultWorkEndHour, resp.WorkEndHour)
}

func TestService_UpdateHierarchy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := domain.Actor{UserID: f.owner}

	_, err := f.svc.Update(ctx, &models.UpdateSettingsRequest{
		Actor:           actor,
		ProviderID:      f.provider.ID,
		SlotStepMinutes: ptr.Ptr(15),
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, &models.UpdateSettingsRequest{
		Actor:              actor,
		ProviderID:         f.provider.ID,
		ServiceID:          &f.service.ID,
		AdvanceBookingDays: ptr.Ptr(14),
	})
	require.NoError(t, err)

	got, err := f.svc.Resolve(ctx, f.provider.ID, &f.service.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.SlotStepMinutes, "inherits provider step")
	assert.Equal(t, 14, got.AdvanceBookingDays)

	other := uuid.New()
	got, err = f.svc.Resolve(ctx, f.provider.ID, &other)
	require.NoError(t, err)
	assert.Equal(t, 15, got.SlotStepMinutes)
	assert.Equal(t, 0, got.AdvanceBookingDays)
}

func TestService_UpdateErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	foreign := uuid.New()

	tests := []struct {
		name    string
		req     *models.UpdateSettingsRequest
		wantErr error
	}{
		{
			name:    "stranger",
			req:     &models.UpdateSettingsRequest{Actor: domain.Actor{UserID: uuid.New()}, ProviderID: f.provider.ID, SlotStepMinutes: ptr.Ptr(15)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "step too small",
			req:     &models.UpdateSettingsRequest{Actor: domain.Actor{UserID: f.owner}, ProviderID: f.provider.ID, SlotStepMinutes: ptr.Ptr(1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative notice",
			req:     &models.UpdateSettingsRequest{Actor: domain.Actor{UserID: f.owner}, ProviderID: f.provider.ID, MinBookingNoticeMinutes: ptr.Ptr(-5)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty",
			req:     &models.UpdateSettingsRequest{Actor: domain.Actor{UserID: f.owner}, ProviderID: f.provider.ID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown provider",
			req:     &models.UpdateSettingsRequest{Actor: domain.Actor{IsAdmin: true}, ProviderID: uuid.New(), SlotStepMinutes: ptr.Ptr(15)},
			wantErr: ErrProviderNotFound,
		},
		{
			name:    "service of another provider",
			req:     &models.UpdateSettingsRequest{Actor: domain.Actor{UserID: f.owner}, ProviderID: f.provider.ID, ServiceID: &foreign, SlotStepMinutes: ptr.Ptr(15)},
			wantErr: ErrServiceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Update(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_AdminCanUpdateAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := domain.Actor{UserID: uuid.New(), IsAdmin: true}

	_, err := f.svc.Update(ctx, &models.UpdateSettingsRequest{Actor: admin, ProviderID: f.provider.ID, SlotStepMinutes: ptr.Ptr(20)})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, &models.DeleteSettingsRequest{Actor: admin, ProviderID: f.provider.ID}))

	err = f.svc.Delete(ctx, &models.DeleteSettingsRequest{Actor: admin, ProviderID: f.provider.ID})
	assert.ErrorIs(t, err, ErrSettingsNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
