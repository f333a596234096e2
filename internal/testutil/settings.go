package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
)

type settingsKey struct {
	provider uuid.UUID
	service  uuid.UUID // uuid.Nil = provider-wide
}

// SettingsStore is an in-memory schedule settings repository.
type SettingsStore struct {
	mu    sync.Mutex
	items map[settingsKey]*domain.ScheduleSettings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{items: make(map[settingsKey]*domain.ScheduleSettings)}
}

func keyOf(providerID uuid.UUID, serviceID *uuid.UUID) settingsKey {
	k := settingsKey{provider: providerID}
	if serviceID != nil {
		k.service = *serviceID
	}
	return k
}

func (s *SettingsStore) Get(_ context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[keyOf(providerID, serviceID)]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *SettingsStore) GetWithHierarchy(ctx context.Context, providerID uuid.UUID, serviceID *uuid.UUID) (*domain.ScheduleSettings, error) {
	if serviceID != nil {
		if st, err := s.Get(ctx, providerID, serviceID); err == nil {
			return st, nil
		}
	}
	return s.Get(ctx, providerID, nil)
}

func (s *SettingsStore) Upsert(_ context.Context, st *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := keyOf(st.ProviderID, st.ServiceID)
	if existing, ok := s.items[k]; ok {
		st.ID = existing.ID
		st.CreatedAt = existing.CreatedAt
	} else if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	cp := *st
	s.items[k] = &cp
	return st, nil
}

func (s *SettingsStore) Delete(_ context.Context, providerID uuid.UUID, serviceID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := keyOf(providerID, serviceID)
	if _, ok := s.items[k]; !ok {
		return settingsRepo.ErrSettingsNotFound
	}
	delete(s.items, k)
	return nil
}
