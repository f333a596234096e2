package sellerservice

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Service услуга из каталога SellerService
type Service struct {
	ID              uuid.UUID `json:"id"`
	ProviderID      uuid.UUID `json:"provider_id"`
	Name            string    `json:"name"`
	CategoryName    string    `json:"category_name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           *float64  `json:"price,omitempty"`
}

// ToDomain конвертирует в доменную модель
func (s *Service) ToDomain() *domain.Service {
	price := 0.0
	if s.Price != nil {
		price = *s.Price
	}
	return &domain.Service{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		Name:            s.Name,
		CategoryName:    s.CategoryName,
		DurationMinutes: s.DurationMinutes,
		Price:           price,
	}
}

// Provider провайдер (салон, сервис) из SellerService
type Provider struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	OwnerIDs      []uuid.UUID `json:"owner_ids"`
	WorkStartHour *int        `json:"work_start_hour,omitempty"`
	WorkEndHour   *int        `json:"work_end_hour,omitempty"`
}

// ToDomain конвертирует в доменную модель
func (p *Provider) ToDomain() *domain.Provider {
	return &domain.Provider{
		ID:            p.ID,
		Name:          p.Name,
		OwnerIDs:      p.OwnerIDs,
		WorkStartHour: p.WorkStartHour,
		WorkEndHour:   p.WorkEndHour,
	}
}

// Staff мастер провайдера
type Staff struct {
	ID             uuid.UUID `json:"id"`
	ProviderID     uuid.UUID `json:"provider_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Specialization string    `json:"specialization"`
	WorkStartHour  *int      `json:"work_start_hour,omitempty"`
	WorkEndHour    *int      `json:"work_end_hour,omitempty"`
}

// ToDomain конвертирует в доменную модель
func (s *Staff) ToDomain() *domain.Staff {
	return &domain.Staff{
		ID:             s.ID,
		ProviderID:     s.ProviderID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Specialization: s.Specialization,
		WorkStartHour:  s.WorkStartHour,
		WorkEndHour:    s.WorkEndHour,
	}
}

type staffListResponse struct {
	Staff []Staff `json:"staff"`
}
