package change_booking_status

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgProviderNotFound   = "провайдер не найден"
	msgInvalidTransition  = "действие недоступно в текущем статусе бронирования"
	msgInvalidData        = "некорректные данные запроса"
)

type Handler struct {
	service BookingService
	action  Action
	logger  Logger
}

// NewHandler создает обработчик для одного действия: confirm, reject или complete
func NewHandler(service BookingService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{confirm|reject|complete}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := fmt.Sprintf("PATCH /bookings/{id}/%s", h.action)

	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *models.BookingResponse
	switch h.action {
	case ActionConfirm:
		result, err = h.service.Confirm(r.Context(), bookingID, actor)
	case ActionReject:
		result, err = h.service.Reject(r.Context(), bookingID, actor, req.Reason)
	case ActionComplete:
		result, err = h.service.Complete(r.Context(), bookingID, actor)
	default:
		err = fmt.Errorf("unsupported action %q", h.action)
	}
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrProviderNotFound):
			h.logger.Warn("%s - Provider not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%s, user_id=%s", route, bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%s", route, bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("%s - Failed to change status: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondDomainError(w, err, msgInvalidData)
		}
		return
	}

	h.logger.Info("%s - Status changed successfully: booking_id=%s, status=%s, user_id=%s",
		route, bookingID, result.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
