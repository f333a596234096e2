package booking

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда ограничение bookings_no_overlap отклонило запись
	ErrSlotNotAvailable = fmt.Errorf("booking.repository: slot not available: %w", domain.ErrSlotConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// isOverlapViolation проверяет, что запись отклонена exclusion constraint
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgerrcode.ExclusionViolation
}

// wrapExec оборачивает ошибку выполнения, сохраняя ошибку драйвера в цепочке
// (txmanager по ней решает, повторять ли транзакцию)
func wrapExec(op string, err error) error {
	if isOverlapViolation(err) {
		return ErrSlotNotAvailable
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}
