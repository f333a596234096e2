package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// ListClientBookingsRequest запрос истории бронирований клиента
type ListClientBookingsRequest struct {
	ClientID uuid.UUID
	Status   *string
	Limit    int
	Offset   int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListClientBookingsRequest) ToDomainFilter() (domain.ClientBookingsFilter, error) {
	filter := domain.ClientBookingsFilter{
		ClientID: r.ClientID,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ListProviderBookingsRequest запрос бронирований провайдера
type ListProviderBookingsRequest struct {
	Actor           domain.Actor
	ProviderID      uuid.UUID
	StaffID         *uuid.UUID // Фильтр по мастеру (опционально)
	From            *time.Time // Начало периода (опционально)
	To              *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить завершенные, отмененные и отклоненные
	Limit           int
	Offset          int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListProviderBookingsRequest) ToDomainFilter() (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID:      r.ProviderID,
		StaffID:         r.StaffID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
		Limit:           r.Limit,
		Offset:          r.Offset,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ClientID           uuid.UUID  `json:"clientId"`
	ProviderID         uuid.UUID  `json:"providerId"`
	ServiceID          uuid.UUID  `json:"serviceId"`
	StaffID            *uuid.UUID `json:"staffId,omitempty"`
	CarID              *uuid.UUID `json:"carId,omitempty"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	ServiceName        string     `json:"serviceName"`
	ServicePrice       float64    `json:"servicePrice"`
	Notes              *string    `json:"notes,omitempty"`
	ClientComment      *string    `json:"clientComment,omitempty"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		ProviderID:         b.ProviderID,
		ServiceID:          b.ServiceID,
		StaffID:            b.StaffID,
		CarID:              b.CarID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    int(b.EndTime.Sub(b.StartTime) / time.Minute),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		Notes:              b.Notes,
		ClientComment:      b.ClientComment,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        b.ConfirmedAt,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, limit, offset int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Limit:    limit,
		Offset:   offset,
	}

	for _, b := range bookings {
		if item := FromDomainBooking(b); item != nil {
			resp.Bookings = append(resp.Bookings, *item)
		}
	}

	return resp
}
