package scheduler

import (
	"time"

	"github.com/korjavin/introscheduler/pkg/interval"
	"github.com/korjavin/introscheduler/pkg/models"
)

// candidate is a slot under evaluation, before it is handed back to the
// caller as a models.CandidateSlot.
type candidate struct {
	window     interval.Interval
	score      float64
	awkward    float64
	earliness  float64
	centering  float64
	dayPenalty float64
}

// generateSlots enumerates every fixed-duration slot that fits inside a
// common free interval and survives the constraint filter. Candidates never
// span a business-hour boundary or midnight because the free intervals they
// are cut from are already clipped per day and per participant upstream.
func generateSlots(
	common []interval.Interval,
	participants []models.Participant,
	constraints MeetingConstraints,
	step time.Duration,
) []candidate {
	earliest := constraints.earliestStart()

	var out []candidate
	for _, free := range common {
		if free.Duration() < constraints.Duration {
			continue
		}
		for start := alignUp(free.Start, step); ; start = start.Add(step) {
			end := start.Add(constraints.Duration)
			if end.After(free.End) {
				break
			}
			if start.Before(earliest) {
				continue
			}
			if !constraints.Deadline.IsZero() && end.After(constraints.Deadline) {
				continue
			}
			if !workingDayForAll(start, participants, constraints.WorkingDays) {
				continue
			}
			out = append(out, candidate{window: interval.Interval{Start: start, End: end}})
		}
	}
	return out
}

// alignUp rounds t up to the next multiple of step, leaving aligned times
// untouched.
func alignUp(t time.Time, step time.Duration) time.Time {
	aligned := t.Truncate(step)
	if aligned.Before(t) {
		aligned = aligned.Add(step)
	}
	return aligned
}

// workingDayForAll re-checks that the slot start falls on a working day in
// every participant's local timezone. Non-working days are already excluded
// upstream; this guards against a free interval that was resolved under
// different overrides than the ones in force now.
func workingDayForAll(start time.Time, participants []models.Participant, override map[time.Weekday]bool) bool {
	for _, p := range participants {
		loc, err := p.Location()
		if err != nil {
			return false
		}
		day := start.In(loc).Weekday()
		if override != nil {
			if !override[day] {
				return false
			}
			continue
		}
		if !p.WorksOn(day) {
			return false
		}
	}
	return true
}
