// Package timewindow holds the pure interval arithmetic used by scheduling:
// half-open overlap, day bounds in the local zone and lazy slot stepping.
package timewindow

import (
	"fmt"
	"iter"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns [start, start+d).
func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsValid reports whether Start is strictly before End.
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals share any instant.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// Contains reports whether other lies completely inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsAny reports whether candidate intersects at least one of busy.
func OverlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// StepSlots yields windowStart, windowStart+step, ... while the value is
// strictly before windowEnd. The sequence is finite and may be ranged over
// any number of times. A non-positive step yields nothing.
func StepSlots(windowStart, windowEnd time.Time, step time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if step <= 0 {
			return
		}
		for t := windowStart; t.Before(windowEnd); t = t.Add(step) {
			if !yield(t) {
				return
			}
		}
	}
}
