package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/sellerservice"
)

// Catalog is an in-memory seller service.
type Catalog struct {
	mu        sync.Mutex
	services  map[uuid.UUID]*domain.Service
	providers map[uuid.UUID]*domain.Provider
	staff     []*domain.Staff

	// Err, when set, is returned by every call.
	Err error
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		services:  make(map[uuid.UUID]*domain.Service),
		providers: make(map[uuid.UUID]*domain.Provider),
	}
}

func (c *Catalog) AddProvider(p *domain.Provider) *domain.Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	c.providers[p.ID] = p
	return p
}

func (c *Catalog) AddService(s *domain.Service) *domain.Service {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	c.services[s.ID] = s
	return s
}

// AddStaff appends a staff member. Listing keeps insertion order.
func (c *Catalog) AddStaff(s *domain.Staff) *domain.Staff {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	c.staff = append(c.staff, s)
	return s
}

func (c *Catalog) GetService(_ context.Context, serviceID uuid.UUID) (*domain.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	s, ok := c.services[serviceID]
	if !ok {
		return nil, sellerservice.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (c *Catalog) GetProvider(_ context.Context, providerID uuid.UUID) (*domain.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	p, ok := c.providers[providerID]
	if !ok {
		return nil, sellerservice.ErrProviderNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *Catalog) ListEligibleStaff(_ context.Context, providerID uuid.UUID, category string) ([]*domain.Staff, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	out := make([]*domain.Staff, 0)
	for _, s := range c.staff {
		if s.ProviderID == providerID && s.IsEligibleFor(category) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (c *Catalog) GetStaff(_ context.Context, staffID uuid.UUID) (*domain.Staff, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	for _, s := range c.staff {
		if s.ID == staffID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sellerservice.ErrStaffNotFound
}

func (c *Catalog) IsProviderOwner(ctx context.Context, userID, providerID uuid.UUID) (bool, error) {
	p, err := c.GetProvider(ctx, providerID)
	if err != nil {
		return false, err
	}
	return p.IsOwner(userID), nil
}
