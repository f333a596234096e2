package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

const (
	displayTimeFormat = "02.01.2006 15:04"

	// removedStatus статус в метаданных удаленной записи
	removedStatus = "removed"
)

// recipient определяет получателя уведомления о событии.
// ok=false означает, что уведомление не отправляется.
func recipient(b *domain.Booking, event domain.BookingEvent, by domain.ActorRole) (uuid.UUID, domain.RecipientRole, bool) {
	switch event {
	case domain.EventCreate:
		return b.ProviderID, domain.RecipientProvider, true
	case domain.EventConfirm, domain.EventReject, domain.EventRemove:
		return b.ClientID, domain.RecipientClient, true
	case domain.EventCancel:
		// уведомляем вторую сторону
		if by == domain.RoleClient {
			return b.ProviderID, domain.RecipientProvider, true
		}
		return b.ClientID, domain.RecipientClient, true
	default:
		return uuid.Nil, "", false
	}
}

// render формирует заголовок и текст уведомления
func render(b *domain.Booking, event domain.BookingEvent, zone timewindow.Zone) (string, string) {
	when := zone.In(b.StartTime).Format(displayTimeFormat)

	switch event {
	case domain.EventCreate:
		return "Новая запись",
			fmt.Sprintf("Клиент записался на «%s» на %s. Требуется подтверждение.", b.ServiceName, when)
	case domain.EventConfirm:
		return "Запись подтверждена",
			fmt.Sprintf("Ваша запись на «%s» на %s подтверждена.", b.ServiceName, when)
	case domain.EventReject:
		body := fmt.Sprintf("Ваша запись на «%s» на %s отклонена.", b.ServiceName, when)
		if b.RejectionReason != nil && *b.RejectionReason != "" {
			body += " Причина: " + *b.RejectionReason
		}
		return "Запись отклонена", body
	case domain.EventCancel:
		body := fmt.Sprintf("Запись на «%s» на %s отменена.", b.ServiceName, when)
		if b.CancellationReason != nil && *b.CancellationReason != "" {
			body += " Причина: " + *b.CancellationReason
		}
		return "Запись отменена", body
	case domain.EventRemove:
		return "Запись удалена",
			fmt.Sprintf("Ваша запись на «%s» на %s удалена.", b.ServiceName, when)
	default:
		return string(event), ""
	}
}

func metadata(b *domain.Booking, event domain.BookingEvent) map[string]string {
	md := map[string]string{
		"bookingId":   b.ID.String(),
		"status":      string(b.Status),
		"event":       string(event),
		"serviceName": b.ServiceName,
		"startTime":   b.StartTime.UTC().Format(time.RFC3339),
	}
	switch event {
	case domain.EventCreate:
		md["requiresAction"] = "true"
	case domain.EventRemove:
		md["status"] = removedStatus
	}
	return md
}
