package get_booking_notifications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	store   NotificationStore
	logger  Logger
}

func NewHandler(service BookingService, store NotificationStore, logger Logger) *Handler {
	return &Handler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/notifications
// Журнал доступен тем же пользователям, что и само бронирование
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/notifications - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if _, err := h.service.GetByID(r.Context(), bookingID, actor); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/notifications - Access denied: booking_id=%s, user_id=%s",
				bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /bookings/{id}/notifications - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	list, err := h.store.ListByBooking(r.Context(), bookingID)
	if err != nil {
		h.logger.Error("GET /bookings/{id}/notifications - Failed to list notifications: booking_id=%s, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id}/notifications - Notifications retrieved: booking_id=%s, count=%d", bookingID, len(list))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(list))
}
