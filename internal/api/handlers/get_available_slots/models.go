package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ServiceID       uuid.UUID       `json:"serviceId"`
	ProviderID      uuid.UUID       `json:"providerId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	LocalTime string     `json:"localTime"` // HH:MM в часовом поясе сервиса
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	StaffName string     `json:"staffName,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, zone timewindow.Zone) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.Start,
			EndTime:   slot.End,
			LocalTime: zone.In(slot.Start).Format(domain.TimeFormat),
			StaffID:   slot.StaffID,
			StaffName: slot.StaffName,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ProviderID:      resp.ProviderID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(zone timewindow.Zone, serviceID uuid.UUID, staffID *uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := zone.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
		StaffID:   staffID,
	}, nil
}
