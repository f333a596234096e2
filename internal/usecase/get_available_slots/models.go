package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID uuid.UUID  // ID услуги
	Date      time.Time  // Локальная дата (время игнорируется)
	StaffID   *uuid.UUID // Конкретный мастер (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ServiceID       uuid.UUID
	ProviderID      uuid.UUID
	DurationMinutes int
	Slots           []Slot // по возрастанию начала внутри каждого ресурса
}

// Slot свободный интервал ресурса
type Slot struct {
	Start     time.Time
	End       time.Time
	StaffID   *uuid.UUID // nil = запись к провайдеру
	StaffName string
}
