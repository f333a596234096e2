package settings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrSettingsNotFound возвращается, когда настройки уровня не заданы
	ErrSettingsNotFound = fmt.Errorf("settings: settings not found: %w", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = fmt.Errorf("settings: provider not found: %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена у провайдера
	ErrServiceNotFound = fmt.Errorf("settings: service not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("settings: access denied: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("settings: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
