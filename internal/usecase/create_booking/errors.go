package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("create_booking: service not found: %w", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда провайдер услуги не найден
	ErrProviderNotFound = fmt.Errorf("create_booking: provider not found: %w", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден у провайдера услуги
	ErrStaffNotFound = fmt.Errorf("create_booking: staff not found: %w", domain.ErrNotFound)

	// ErrStaffNotEligible возвращается, когда мастер не выполняет услуги этой категории
	ErrStaffNotEligible = fmt.Errorf("create_booking: staff is not eligible for service: %w", domain.ErrValidation)

	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = fmt.Errorf("create_booking: car not found: %w", domain.ErrNotFound)

	// ErrCarNotOwned возвращается, когда автомобиль принадлежит другому пользователю
	ErrCarNotOwned = fmt.Errorf("create_booking: car belongs to another user: %w", domain.ErrForbidden)

	// ErrStartInPast возвращается, когда время начала уже прошло
	ErrStartInPast = fmt.Errorf("create_booking: start time is in the past: %w", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("create_booking: date is too far in the future: %w", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = fmt.Errorf("create_booking: too late to book this slot: %w", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочее окно ресурса
	ErrOutsideWorkingHours = fmt.Errorf("create_booking: outside working hours: %w", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда ресурс занят на выбранный интервал
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot is not available: %w", domain.ErrSlotConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
