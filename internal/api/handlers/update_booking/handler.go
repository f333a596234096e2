package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotEditable        = "бронирование нельзя изменить в текущем статусе"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgOutsideHours       = "время вне рабочих часов"
	msgStartInPast        = "время начала в прошлом"
	msgTooFarInFuture     = "дата слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgProviderNotFound   = "провайдер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidData        = "некорректные данные бронирования"
)

type Handler struct {
	service BookingService
	zone    timewindow.Zone
	logger  Logger
}

func NewHandler(service BookingService, zone timewindow.Zone, logger Logger) *Handler {
	return &Handler{
		service: service,
		zone:    zone,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToPatch(h.zone)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.Update(r.Context(), bookingID, actor, patch)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrProviderNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Provider not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, bookings.ErrServiceNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Service not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrNotEditable):
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, bookings.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id} - Slot not available: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, bookings.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, bookings.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, bookings.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgTooFarInFuture)

		case errors.Is(err, bookings.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgInvalidData)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%s, user_id=%s",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
