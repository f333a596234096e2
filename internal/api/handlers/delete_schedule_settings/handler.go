package delete_schedule_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "настройки не найдены"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/providers/{providerId}/settings
// Query params: serviceId (опционально). После удаления действуют настройки уровнем выше
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/settings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := handlers.QueryUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/settings - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /providers/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteSettingsRequest{
		Actor:      actor,
		ProviderID: providerID,
		ServiceID:  serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrSettingsNotFound),
			errors.Is(err, settings.ErrProviderNotFound),
			errors.Is(err, settings.ErrServiceNotFound):
			h.logger.Warn("DELETE /providers/{id}/settings - Not found: provider_id=%s, service_id=%v", providerID, serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("DELETE /providers/{id}/settings - Access denied: provider_id=%s, user_id=%s",
				providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /providers/{id}/settings - Failed to delete settings: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/settings - Settings deleted: provider_id=%s, service_id=%v", providerID, serviceID)
	w.WriteHeader(http.StatusNoContent)
}
