package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: booking not found: %w", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = fmt.Errorf("bookings: provider not found: %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга записи больше не существует
	ErrServiceNotFound = fmt.Errorf("bookings: service not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("bookings: access denied: %w", domain.ErrForbidden)

	// ErrInvalidTransition возвращается, когда событие недопустимо из текущего статуса
	ErrInvalidTransition = fmt.Errorf("bookings: invalid status transition: %w", domain.ErrInvalidTransition)

	// ErrNotEditable возвращается при изменении завершенной записи
	ErrNotEditable = fmt.Errorf("bookings: booking is not editable: %w", domain.ErrInvalidTransition)

	// ErrSlotNotAvailable возвращается, когда новое время занято
	ErrSlotNotAvailable = fmt.Errorf("bookings: slot is not available: %w", domain.ErrSlotConflict)

	// ErrOutsideWorkingHours возвращается, когда новое время вне рабочего окна
	ErrOutsideWorkingHours = fmt.Errorf("bookings: outside working hours: %w", domain.ErrValidation)

	// ErrStartInPast возвращается при переносе на прошедшее время
	ErrStartInPast = fmt.Errorf("bookings: start time is in the past: %w", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда новая дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("bookings: date is too far in the future: %w", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда новое время нарушает minBookingNoticeMinutes
	ErrTooLateToBook = fmt.Errorf("bookings: too late to book this slot: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
