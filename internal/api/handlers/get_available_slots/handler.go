package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

const (
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidStaffID    = "некорректный ID мастера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgProviderNotFound  = "провайдер не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgStaffNotFound     = "мастер не найден"
	msgStaffNotEligible  = "мастер не оказывает эту услугу"
	msgInvalidSlotDate   = "дата в прошлом"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgInvalidParameters = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	zone    timewindow.Zone
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, zone timewindow.Zone, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		zone:    zone,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots
// Query params: date (required, YYYY-MM-DD), staffId (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	staffID, err := handlers.QueryUUID(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(h.zone, serviceID, staffID, dateStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Provider not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Staff not found: staff_id=%v", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotEligible):
			h.logger.Warn("GET /services/{id}/available-slots - Staff not eligible: staff_id=%v, service_id=%s", staffID, serviceID)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /services/{id}/available-slots - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidSlotDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /services/{id}/available-slots - Date too far in future: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParameters)

		default:
			h.logger.Error("GET /services/{id}/available-slots - Failed to get slots: service_id=%s, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, h.zone)

	h.logger.Info("GET /services/{id}/available-slots - Slots retrieved successfully: service_id=%s, date=%s, slots_count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
