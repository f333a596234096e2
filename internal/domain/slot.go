package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailableSlot represents a free [Start, End) interval of one resource
type AvailableSlot struct {
	Start     time.Time
	End       time.Time
	StaffID   *uuid.UUID // nil for the provider-level resource
	StaffName string
}

// DurationMinutes returns the slot length in minutes
func (s *AvailableSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
