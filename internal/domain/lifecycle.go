package domain

import "fmt"

// BookingEvent is a lifecycle event applied to an existing booking.
type BookingEvent string

const (
	EventCreate   BookingEvent = "create"
	EventConfirm  BookingEvent = "confirm"
	EventReject   BookingEvent = "reject"
	EventCancel   BookingEvent = "cancel"
	EventComplete BookingEvent = "complete"
	EventRemove   BookingEvent = "remove"
)

// transitions is the full lifecycle table; anything absent is invalid.
var transitions = map[BookingStatus]map[BookingEvent]BookingStatus{
	StatusPending: {
		EventConfirm: StatusConfirmed,
		EventReject:  StatusRejected,
		EventCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		EventCancel:   StatusCancelled,
		EventComplete: StatusCompleted,
	},
}

// NextStatus returns the status reached by applying event to from,
// or ErrInvalidTransition.
func NextStatus(from BookingStatus, event BookingEvent) (BookingStatus, error) {
	to, ok := transitions[from][event]
	if !ok {
		return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, from)
	}
	return to, nil
}

// CanApply reports whether event is allowed from status.
func CanApply(from BookingStatus, event BookingEvent) bool {
	_, ok := transitions[from][event]
	return ok
}
