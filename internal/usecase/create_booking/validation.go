package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.ClientComment != nil && len([]rune(*req.ClientComment)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: clientComment must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateStartTime проверяет время начала относительно текущего момента и настроек
func validateStartTime(zone timewindow.Zone, start, now time.Time, settings *domain.ScheduleSettings) error {
	if start.Before(now) {
		return ErrStartInPast
	}

	if settings.HasAdvanceBookingLimit() {
		maxDate := zone.Date(now).AddDate(0, 0, settings.AdvanceBookingDays)
		if zone.Date(start).After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
		}
	}

	if start.Before(now.Add(settings.MinNotice())) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, settings.MinBookingNoticeMinutes)
	}

	return nil
}
