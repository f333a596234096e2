package get_booking_notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// NotificationResponse запись журнала уведомлений
type NotificationResponse struct {
	ID            uuid.UUID         `json:"id"`
	RecipientID   uuid.UUID         `json:"recipientId"`
	RecipientRole string            `json:"recipientRole"`
	Event         string            `json:"event"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Status        string            `json:"status"`
	Error         *string           `json:"error,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	SentAt        *time.Time        `json:"sentAt,omitempty"`
}

// FromDomain конвертирует журнал в HTTP ответ
func FromDomain(list []*domain.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		result = append(result, NotificationResponse{
			ID:            n.ID,
			RecipientID:   n.RecipientID,
			RecipientRole: string(n.RecipientRole),
			Event:         string(n.Event),
			Title:         n.Title,
			Body:          n.Body,
			Metadata:      n.Metadata,
			Status:        string(n.Status),
			Error:         n.Error,
			CreatedAt:     n.CreatedAt,
			SentAt:        n.SentAt,
		})
	}
	return result
}
