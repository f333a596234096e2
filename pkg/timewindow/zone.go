package timewindow

import (
	"fmt"
	"time"
)

// Zone is the single local time zone all scheduling calculations run in.
type Zone struct {
	loc *time.Location
}

// LoadZone resolves an IANA zone name. An empty name means UTC.
func LoadZone(name string) (Zone, error) {
	if name == "" {
		return Zone{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("timewindow: load zone %q: %w", name, err)
	}
	return Zone{loc: loc}, nil
}

// NewZone wraps an already resolved location.
func NewZone(loc *time.Location) Zone {
	if loc == nil {
		loc = time.UTC
	}
	return Zone{loc: loc}
}

// Location returns the wrapped location.
func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// In converts t into the zone.
func (z Zone) In(t time.Time) time.Time {
	return t.In(z.Location())
}

// Date returns local midnight of the calendar day t falls on in the zone.
func (z Zone) Date(t time.Time) time.Time {
	y, m, d := t.In(z.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, z.Location())
}

// ParseDate parses YYYY-MM-DD as a local calendar day.
func (z Zone) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, z.Location())
}

// DayBounds returns local midnight of date and the next local midnight.
func (z Zone) DayBounds(date time.Time) (time.Time, time.Time) {
	start := z.Date(date)
	return start, start.AddDate(0, 0, 1)
}

// WorkingWindow returns [date+startHour, date+endHour) in local time.
func (z Zone) WorkingWindow(date time.Time, startHour, endHour int) Interval {
	day := z.Date(date)
	return Interval{
		Start: time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, z.Location()),
		End:   time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, z.Location()),
	}
}

// SameDay reports whether a and b fall on the same local calendar day.
func (z Zone) SameDay(a, b time.Time) bool {
	return z.Date(a).Equal(z.Date(b))
}
