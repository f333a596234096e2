package change_booking_status

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Action событие жизненного цикла, которое выполняет провайдер
type Action = domain.BookingEvent

const (
	ActionConfirm  = domain.EventConfirm
	ActionReject   = domain.EventReject
	ActionComplete = domain.EventComplete
)

// ChangeStatusRequest HTTP request model (тело опционально)
type ChangeStatusRequest struct {
	Reason *string `json:"reason,omitempty"` // только для reject
}
