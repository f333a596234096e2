package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// CreateBookingRequest HTTP request model
// Дата и время задаются в часовом поясе сервиса
type CreateBookingRequest struct {
	ServiceID     uuid.UUID  `json:"serviceId"`
	StaffID       *uuid.UUID `json:"staffId,omitempty"`
	CarID         *uuid.UUID `json:"carId,omitempty"`
	BookingDate   string     `json:"bookingDate"` // "2025-10-15"
	StartTime     string     `json:"startTime"`   // "10:00"
	Notes         *string    `json:"notes,omitempty"`
	ClientComment *string    `json:"clientComment,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	ClientID        uuid.UUID  `json:"clientId"`
	ProviderID      uuid.UUID  `json:"providerId"`
	ServiceID       uuid.UUID  `json:"serviceId"`
	StaffID         *uuid.UUID `json:"staffId,omitempty"`
	CarID           *uuid.UUID `json:"carId,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	ServiceName     string     `json:"serviceName"`
	ServicePrice    float64    `json:"servicePrice"`
	Notes           *string    `json:"notes,omitempty"`
	ClientComment   *string    `json:"clientComment,omitempty"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(zone timewindow.Zone, clientID uuid.UUID) (*createBooking.Request, error) {
	start, err := time.ParseInLocation(domain.DateTimeFormat, r.BookingDate+" "+r.StartTime, zone.Location())
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:      clientID,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		CarID:         r.CarID,
		StartTime:     start,
		Notes:         r.Notes,
		ClientComment: r.ClientComment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ProviderID:      resp.ProviderID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		CarID:           resp.CarID,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		ClientComment:   resp.ClientComment,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
