package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("get_available_slots: service not found: %w", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда провайдер услуги не найден
	ErrProviderNotFound = fmt.Errorf("get_available_slots: provider not found: %w", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден у провайдера услуги
	ErrStaffNotFound = fmt.Errorf("get_available_slots: staff not found: %w", domain.ErrNotFound)

	// ErrStaffNotEligible возвращается, когда мастер не выполняет услуги этой категории
	ErrStaffNotEligible = fmt.Errorf("get_available_slots: staff is not eligible for service: %w", domain.ErrValidation)

	// ErrInvalidDate возвращается при некорректной дате (в прошлом)
	ErrInvalidDate = fmt.Errorf("get_available_slots: invalid date: %w", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("get_available_slots: date is too far in the future: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
