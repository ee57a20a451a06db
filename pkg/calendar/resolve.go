package calendar

import (
	"fmt"
	"time"

	"github.com/korjavin/introscheduler/pkg/interval"
	"github.com/korjavin/introscheduler/pkg/models"
)

// Resolve turns a participant's merged busy set into their free intervals
// within [rangeStart, rangeEnd).
//
// For each working day in the range the participant's business-hour window
// is built in their local timezone, converted to UTC, clamped to the range
// and reduced by that day's busy time. Days with no free time left simply
// do not appear in the output.
func Resolve(busy []Busy, p models.Participant, rangeStart, rangeEnd time.Time) ([]interval.Interval, error) {
	loc, err := p.Location()
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q for participant %s: %w", p.Timezone, p.ID, err)
	}

	rangeStart = rangeStart.UTC()
	rangeEnd = rangeEnd.UTC()
	busyWindows := Windows(busy)

	var free []interval.Interval

	// Walk local calendar days. Start one day early so a window that began
	// the previous local day but spills into the range is not missed.
	day := rangeStart.In(loc)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)

	for ; day.Before(rangeEnd.In(loc)); day = day.AddDate(0, 0, 1) {
		if !p.WorksOn(day.Weekday()) {
			continue
		}

		winStart := time.Date(day.Year(), day.Month(), day.Day(),
			p.Hours.StartHour, p.Hours.StartMinute, 0, 0, loc)
		winEnd := time.Date(day.Year(), day.Month(), day.Day(),
			p.Hours.EndHour, p.Hours.EndMinute, 0, 0, loc)
		if !winStart.Before(winEnd) {
			continue
		}

		// Clamp the day's window to the requested range.
		start := winStart.UTC()
		end := winEnd.UTC()
		if start.Before(rangeStart) {
			start = rangeStart
		}
		if end.After(rangeEnd) {
			end = rangeEnd
		}
		if !start.Before(end) {
			continue
		}

		window := interval.Interval{Start: start, End: end}
		free = append(free, interval.Subtract(window, busyWindows)...)
	}

	return free, nil
}
