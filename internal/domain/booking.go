package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusRejected  BookingStatus = "rejected"
)

// ParseBookingStatus converts a raw string into a known status.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRejected:
		return st, nil
	default:
		return "", ErrValidation
	}
}

// IsLive returns true for statuses that occupy the resource.
func (s BookingStatus) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true for statuses that accept no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusRejected
}

// Booking is a reservation of one resource for [StartTime, EndTime).
type Booking struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	StaffID    *uuid.UUID // nil = the provider itself is the resource
	CarID      *uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	Notes              *string
	ClientComment      *string
	RejectionReason    *string
	CancellationReason *string

	ConfirmedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resource returns the capacity unit this booking occupies.
func (b *Booking) Resource() Resource {
	return Resource{ProviderID: b.ProviderID, StaffID: b.StaffID}
}

// Interval returns the booked time range.
func (b *Booking) Interval() timewindow.Interval {
	return timewindow.Interval{Start: b.StartTime, End: b.EndTime}
}

// IsLive returns true if the booking still occupies its resource.
func (b *Booking) IsLive() bool {
	return b.Status.IsLive()
}

// IsTerminal returns true if the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// BelongsToClient returns true if userID is the client who made the booking.
func (b *Booking) BelongsToClient(userID uuid.UUID) bool {
	return b.ClientID == userID
}

// BookingPatch lists the fields a participant may change on a live booking.
// Nil fields are left untouched. Status is changed only through lifecycle events.
type BookingPatch struct {
	Notes         *string
	ClientComment *string
	StartTime     *time.Time
}

// IsEmpty returns true if the patch changes nothing.
func (p BookingPatch) IsEmpty() bool {
	return p.Notes == nil && p.ClientComment == nil && p.StartTime == nil
}

// Reschedules returns true if the patch moves the booking to another start time.
func (p BookingPatch) Reschedules(current *Booking) bool {
	return p.StartTime != nil && !p.StartTime.Equal(current.StartTime)
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      uuid.UUID      // Обязательный параметр
	StaffID         *uuid.UUID     // Фильтр по мастеру
	From            *time.Time     // Начало периода (включительно)
	To              *time.Time     // Конец периода (не включительно)
	Status          *BookingStatus // Фильтр по статусу
	IncludeInactive bool           // Включать ли завершенные, отмененные и отклоненные
	Limit           int
	Offset          int
}

// ClientBookingsFilter фильтр для истории бронирований клиента
type ClientBookingsFilter struct {
	ClientID uuid.UUID
	Status   *BookingStatus
	Limit    int
	Offset   int
}
