package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// computeSlots перебирает кандидатов с шагом step от начала рабочего окна.
// Кандидат свободен, если [start, start+duration) помещается в окно,
// начинается не раньше notBefore и не пересекается ни с одним занятым интервалом.
func computeSlots(
	window timewindow.Interval,
	duration time.Duration,
	step time.Duration,
	notBefore time.Time,
	busy []timewindow.Interval,
) []timewindow.Interval {
	slots := make([]timewindow.Interval, 0)
	if duration <= 0 {
		return slots
	}

	for start := range timewindow.StepSlots(window.Start, window.End, step) {
		candidate := timewindow.NewInterval(start, duration)
		if candidate.End.After(window.End) {
			break
		}
		if start.Before(notBefore) {
			continue
		}
		if timewindow.OverlapsAny(candidate, busy) {
			continue
		}
		slots = append(slots, candidate)
	}
	return slots
}
