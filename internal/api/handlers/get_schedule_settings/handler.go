package get_schedule_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgProviderNotFound  = "провайдер не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/settings
// Query params: serviceId (опционально)
// Публичный endpoint - без авторизации; без своих настроек возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/settings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := handlers.QueryUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/settings - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.Get(r.Context(), &models.GetSettingsRequest{
		ProviderID: providerID,
		ServiceID:  serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrProviderNotFound):
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, settings.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/settings - Failed to get settings: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/settings - Settings retrieved successfully: provider_id=%s, default=%t",
		providerID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
