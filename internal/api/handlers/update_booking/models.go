package update_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

var errIncompleteDateTime = errors.New("bookingDate and startTime must be set together")

// UpdateBookingRequest HTTP request model
// Перенос задается парой bookingDate + startTime в часовом поясе сервиса
type UpdateBookingRequest struct {
	Notes         *string `json:"notes,omitempty"`
	ClientComment *string `json:"clientComment,omitempty"`
	BookingDate   *string `json:"bookingDate,omitempty"` // "2025-10-15"
	StartTime     *string `json:"startTime,omitempty"`   // "10:00"
}

// ToPatch конвертирует HTTP запрос в доменный patch
func (r *UpdateBookingRequest) ToPatch(zone timewindow.Zone) (domain.BookingPatch, error) {
	patch := domain.BookingPatch{
		Notes:         r.Notes,
		ClientComment: r.ClientComment,
	}

	if r.BookingDate == nil && r.StartTime == nil {
		return patch, nil
	}
	if r.BookingDate == nil || r.StartTime == nil {
		return patch, errIncompleteDateTime
	}

	start, err := time.ParseInLocation(domain.DateTimeFormat, *r.BookingDate+" "+*r.StartTime, zone.Location())
	if err != nil {
		return patch, err
	}
	patch.StartTime = &start

	return patch, nil
}
