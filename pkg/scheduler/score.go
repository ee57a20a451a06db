package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/korjavin/introscheduler/pkg/models"
)

// rank scores every candidate and returns the survivors ordered best-first.
// Candidates scoring below zero are dropped. Ties are broken by earliest
// start, then by lowest timezone awkwardness, so identical inputs always
// produce the identical ordering.
func rank(
	candidates []candidate,
	participants []models.Participant,
	constraints MeetingConstraints,
	opts Options,
) []candidate {
	rangeSpan := constraints.RangeEnd.Sub(constraints.RangeStart).Seconds()

	scored := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		c.earliness = 1 - c.window.Start.Sub(constraints.RangeStart).Seconds()/rangeSpan
		c.centering, c.awkward = centering(c, participants, constraints)
		c.dayPenalty = dayPenalty(c, participants, opts.LowPreferenceDays)

		c.score = opts.Weights.Earliness*c.earliness +
			opts.Weights.Centering*c.centering -
			opts.Weights.DayOfWeek*c.dayPenalty

		if c.score < 0 || math.IsNaN(c.score) {
			continue
		}
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if !scored[i].window.Start.Equal(scored[j].window.Start) {
			return scored[i].window.Start.Before(scored[j].window.Start)
		}
		return scored[i].awkward < scored[j].awkward
	})

	return scored
}

// centering measures how far the slot midpoint sits from the middle of each
// participant's business-hour window, in their own timezone. It returns the
// average closeness (1 at dead center, 0 at a window edge) and the worst
// per-participant distance, which the ranker uses as the awkwardness
// tie-break.
func centering(c candidate, participants []models.Participant, constraints MeetingConstraints) (float64, float64) {
	mid := c.window.Start.Add(c.window.Duration() / 2)

	var sum, worst float64
	counted := 0
	for _, p := range participants {
		hours := p.Hours
		if constraints.Hours != nil {
			hours = *constraints.Hours
		}

		loc, err := p.Location()
		if err != nil {
			continue
		}
		local := mid.In(loc)
		midMin := float64(local.Hour()*60 + local.Minute())

		winStart := float64(hours.StartHour*60 + hours.StartMinute)
		winEnd := float64(hours.EndHour*60 + hours.EndMinute)
		half := (winEnd - winStart) / 2
		if half <= 0 {
			continue
		}

		dist := math.Abs(midMin-(winStart+half)) / half
		if dist > 1 {
			dist = 1
		}
		sum += 1 - dist
		if dist > worst {
			worst = dist
		}
		counted++
	}

	if counted == 0 {
		return 0, 0
	}
	return sum / float64(counted), worst
}

// dayPenalty is the fraction of participants for whom the slot starts on a
// low-preference weekday in their local timezone.
func dayPenalty(c candidate, participants []models.Participant, lowPref map[time.Weekday]bool) float64 {
	if len(lowPref) == 0 {
		return 0
	}

	hits := 0
	for _, p := range participants {
		loc, err := p.Location()
		if err != nil {
			continue
		}
		if lowPref[c.window.Start.In(loc).Weekday()] {
			hits++
		}
	}
	return float64(hits) / float64(len(participants))
}
