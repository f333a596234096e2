package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffID must not be empty", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и укладывается в advanceBookingDays
func validateDate(zone timewindow.Zone, date, now time.Time, advanceBookingDays int) error {
	day := zone.Date(date)
	today := zone.Date(now)

	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, day.Format(time.DateOnly))
	}

	// 0 = без ограничений
	if advanceBookingDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}
	return nil
}
