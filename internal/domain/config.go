package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleSettings represents the booking rules of a provider
// Supports hierarchical configuration:
// 1. Service-specific (provider_id, service_id)
// 2. Provider-wide (provider_id, NULL)
// Missing levels fall back to process defaults.
type ScheduleSettings struct {
	ID                      uuid.UUID
	ProviderID              uuid.UUID
	ServiceID               *uuid.UUID // NULL = settings for all services
	SlotStepMinutes         int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsProviderWide returns true if the settings are not bound to a service
func (s *ScheduleSettings) IsProviderWide() bool {
	return s.ServiceID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *ScheduleSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// SlotStep returns the candidate step as a duration
func (s *ScheduleSettings) SlotStep() time.Duration {
	return time.Duration(s.SlotStepMinutes) * time.Minute
}

// MinNotice returns the minimum booking notice as a duration
func (s *ScheduleSettings) MinNotice() time.Duration {
	return time.Duration(s.MinBookingNoticeMinutes) * time.Minute
}

// SchedulingDefaults are the process-wide fallbacks from the service config
type SchedulingDefaults struct {
	WorkStartHour           int
	WorkEndHour             int
	SlotStepMinutes         int
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
}

// DefaultSchedulingDefaults returns the built-in fallbacks (9:00-18:00, 30 minute step)
func DefaultSchedulingDefaults() SchedulingDefaults {
	return SchedulingDefaults{
		WorkStartHour:           DefaultWorkStartHour,
		WorkEndHour:             DefaultWorkEndHour,
		SlotStepMinutes:         DefaultSlotStepMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
