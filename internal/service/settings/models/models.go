package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// GetSettingsRequest запрос на получение действующих настроек
type GetSettingsRequest struct {
	ProviderID uuid.UUID  `json:"providerId"`
	ServiceID  *uuid.UUID `json:"serviceId,omitempty"` // nil = настройки провайдера
}

// UpdateSettingsRequest запрос на изменение настроек
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	Actor                   domain.Actor `json:"-"`
	ProviderID              uuid.UUID    `json:"-"`
	ServiceID               *uuid.UUID   `json:"serviceId,omitempty"`
	SlotStepMinutes         *int         `json:"slotStepMinutes,omitempty"`
	AdvanceBookingDays      *int         `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int         `json:"minBookingNoticeMinutes,omitempty"`
}

// DeleteSettingsRequest запрос на сброс настроек к значениям по умолчанию
type DeleteSettingsRequest struct {
	Actor      domain.Actor
	ProviderID uuid.UUID
	ServiceID  *uuid.UUID
}

// Response модели

// SettingsResponse действующие настройки расписания
type SettingsResponse struct {
	ProviderID              uuid.UUID  `json:"providerId"`
	ServiceID               *uuid.UUID `json:"serviceId,omitempty"`
	SlotStepMinutes         int        `json:"slotStepMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	WorkStartHour           int        `json:"workStartHour"`
	WorkEndHour             int        `json:"workEndHour"`
	IsDefault               bool       `json:"isDefault"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomain конвертирует domain модель в DTO
func FromDomain(s *domain.ScheduleSettings, isDefault bool, workStart, workEnd int) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ProviderID:              s.ProviderID,
		ServiceID:               s.ServiceID,
		SlotStepMinutes:         s.SlotStepMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		WorkStartHour:           workStart,
		WorkEndHour:             workEnd,
		IsDefault:               isDefault,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ApplyTo применяет обновления к настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSettingsRequest) ApplyTo(s *domain.ScheduleSettings) {
	if r.SlotStepMinutes != nil {
		s.SlotStepMinutes = *r.SlotStepMinutes
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
}

// IsEmpty возвращает true, если запрос ничего не меняет
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.SlotStepMinutes == nil && r.AdvanceBookingDays == nil && r.MinBookingNoticeMinutes == nil
}
