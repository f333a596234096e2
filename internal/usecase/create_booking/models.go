package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID      uuid.UUID  // ID клиента (из заголовка авторизации)
	ServiceID     uuid.UUID  // ID услуги
	StaffID       *uuid.UUID // Мастер (nil = запись к провайдеру)
	CarID         *uuid.UUID // Автомобиль клиента (опционально)
	StartTime     time.Time  // Начало, конец вычисляется по длительности услуги
	Notes         *string
	ClientComment *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	ProviderID      uuid.UUID
	ServiceID       uuid.UUID
	StaffID         *uuid.UUID
	CarID           *uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          domain.BookingStatus

	// Денормализованные данные
	ServiceName   string
	ServicePrice  float64
	Notes         *string
	ClientComment *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		ClientID:        b.ClientID,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		StaffID:         b.StaffID,
		CarID:           b.CarID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: int(b.EndTime.Sub(b.StartTime) / time.Minute),
		Status:          b.Status,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		ClientComment:   b.ClientComment,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
