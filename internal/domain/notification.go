package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecipientRole tells the notifier how to resolve the recipient ID.
type RecipientRole string

const (
	RecipientClient   RecipientRole = "client"
	RecipientProvider RecipientRole = "provider"
)

// NotificationStatus is the delivery state of a logged notification.
type NotificationStatus string

const (
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// Notification is one notification request emitted for a booking transition.
type Notification struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	RecipientID   uuid.UUID
	RecipientRole RecipientRole
	Event         BookingEvent
	Title         string
	Body          string
	Metadata      map[string]string
	Status        NotificationStatus
	Error         *string
	CreatedAt     time.Time
	SentAt        *time.Time
}
