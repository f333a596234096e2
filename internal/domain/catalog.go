package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// UniversalSpecialization marks staff eligible for every service category.
const UniversalSpecialization = "universal"

// Service is a bookable offering of a provider.
type Service struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	Name            string
	CategoryName    string
	DurationMinutes int
	Price           float64
}

// Duration returns the service duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Provider is the business that owns services and staff.
type Provider struct {
	ID            uuid.UUID
	Name          string
	OwnerIDs      []uuid.UUID
	WorkStartHour *int
	WorkEndHour   *int
}

// IsOwner returns true if userID may act on behalf of the provider.
func (p *Provider) IsOwner(userID uuid.UUID) bool {
	for _, id := range p.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Staff is a member of a provider who performs services ("master").
type Staff struct {
	ID             uuid.UUID
	ProviderID     uuid.UUID
	FirstName      string
	LastName       string
	Specialization string
	WorkStartHour  *int
	WorkEndHour    *int
}

// FullName returns "First Last".
func (s *Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsEligibleFor returns true if the staff member can perform services of category.
// Specializations are matched exactly.
func (s *Staff) IsEligibleFor(category string) bool {
	return s.Specialization == category || s.Specialization == UniversalSpecialization
}

// WorkingHours resolves the working hours of a resource:
// staff hours if set, then provider hours, then the supplied defaults.
func WorkingHours(staff *Staff, provider *Provider, defStart, defEnd int) (int, int) {
	start, end := defStart, defEnd
	if provider != nil {
		if provider.WorkStartHour != nil {
			start = *provider.WorkStartHour
		}
		if provider.WorkEndHour != nil {
			end = *provider.WorkEndHour
		}
	}
	if staff != nil {
		if staff.WorkStartHour != nil {
			start = *staff.WorkStartHour
		}
		if staff.WorkEndHour != nil {
			end = *staff.WorkEndHour
		}
	}
	return start, end
}

// WorkingWindow returns the working interval of a resource on date in zone.
// staff may be nil for the provider-level resource.
func WorkingWindow(zone timewindow.Zone, date time.Time, staff *Staff, provider *Provider, defaults SchedulingDefaults) timewindow.Interval {
	start, end := WorkingHours(staff, provider, defaults.WorkStartHour, defaults.WorkEndHour)
	return zone.WorkingWindow(date, start, end)
}
