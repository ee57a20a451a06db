package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/korjavin/introscheduler/pkg/calendar"
	"github.com/korjavin/introscheduler/pkg/interval"
	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/korjavin/introscheduler/pkg/models"
)

// MeetingConstraints bounds one scheduling request: how long the meeting
// is, in which date range it may fall, and how soon it may start.
type MeetingConstraints struct {
	Duration   time.Duration
	RangeStart time.Time
	RangeEnd   time.Time
	// Deadline is a hard upper bound on the slot end. Zero means no deadline.
	Deadline time.Time
	// Now anchors the lead-time check. Zero means lead time counts from
	// RangeStart, which keeps runs over fixed inputs deterministic in tests.
	Now time.Time
	// LeadTime is the minimum delay before the earliest permissible start.
	LeadTime time.Duration
	// Hours, when non-nil, overrides every participant's business hours.
	Hours *models.BusinessHours
	// WorkingDays, when non-nil, overrides every participant's working days.
	WorkingDays map[time.Weekday]bool
}

func (c MeetingConstraints) validate() error {
	if c.Duration <= 0 {
		return newError(KindInvalidConstraints, fmt.Sprintf("duration must be positive, got %s", c.Duration))
	}
	if !c.RangeStart.Before(c.RangeEnd) {
		return newError(KindInvalidConstraints, fmt.Sprintf("range start %s is not before range end %s", c.RangeStart, c.RangeEnd))
	}
	if !c.Deadline.IsZero() && c.Deadline.Before(c.RangeStart) {
		return newError(KindInvalidConstraints, fmt.Sprintf("deadline %s is before range start %s", c.Deadline, c.RangeStart))
	}
	if c.LeadTime < 0 {
		return newError(KindInvalidConstraints, "lead time must not be negative")
	}
	return nil
}

// earliestStart is the first instant a candidate slot may begin.
func (c MeetingConstraints) earliestStart() time.Time {
	anchor := c.Now
	if anchor.IsZero() || anchor.Before(c.RangeStart) {
		anchor = c.RangeStart
	}
	return anchor.Add(c.LeadTime)
}

// Weights holds the scoring coefficients. The exact values are deployment
// tuning, not algorithm, so they live in configuration.
type Weights struct {
	Earliness float64 `json:"earliness"`
	Centering float64 `json:"centering"`
	DayOfWeek float64 `json:"day_of_week"`
}

// Options carries the shared tuning of a scheduling run. It is passed
// explicitly into each call; the engine keeps no process-wide state.
type Options struct {
	// Step is the alignment granularity for candidate start times.
	Step time.Duration
	// Weights are the scoring coefficients.
	Weights Weights
	// LowPreferenceDays are deprioritized by the day-of-week scoring term.
	LowPreferenceDays map[time.Weekday]bool
}

// DefaultOptions returns the tuning used when the caller has no opinion:
// 15-minute alignment, earliness-dominated scoring, no day preference.
func DefaultOptions() Options {
	return Options{
		Step: 15 * time.Minute,
		Weights: Weights{
			Earliness: 60,
			Centering: 30,
			DayOfWeek: 20,
		},
	}
}

// BusyCalendars is one participant's raw busy input, one list per source.
type BusyCalendars struct {
	Primary  []calendar.Busy
	Override []calendar.Busy
}

var log = logger.New("scheduler")

// ProposeMeetingSlots runs the full pipeline: merge each participant's two
// calendar sources, resolve free time against business hours and working
// days, intersect across participants, enumerate candidate slots and return
// the topK best-scoring ones.
//
// The function is pure: it performs no I/O, mutates none of its inputs and
// holds no state between calls, so concurrent callers need no coordination.
// Every failure is a classified *Error (see KindOf).
func ProposeMeetingSlots(
	participants []models.Participant,
	busyByParticipant map[string]BusyCalendars,
	constraints MeetingConstraints,
	topK int,
	opts Options,
) ([]models.CandidateSlot, error) {
	if err := constraints.validate(); err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return nil, newError(KindInvalidConstraints, "at least one participant is required")
	}
	if topK <= 0 {
		return nil, newError(KindInvalidConstraints, fmt.Sprintf("topK must be positive, got %d", topK))
	}
	if opts.Step <= 0 {
		opts.Step = DefaultOptions().Step
	}

	freeByParticipant := make(map[string][]interval.Interval, len(participants))
	for _, p := range participants {
		if constraints.Hours != nil {
			p.Hours = *constraints.Hours
		}
		if constraints.WorkingDays != nil {
			p.WorkingDays = constraints.WorkingDays
		}

		busy := busyByParticipant[p.ID]
		merged, err := calendar.MergeBusy(busy.Primary, busy.Override)
		if err != nil {
			if errors.Is(err, calendar.ErrInvalidInterval) {
				return nil, newError(KindInvalidInterval, err.Error())
			}
			return nil, err
		}

		free, err := calendar.Resolve(merged, p, constraints.RangeStart, constraints.RangeEnd)
		if err != nil {
			return nil, newError(KindInvalidConstraints, err.Error())
		}
		freeByParticipant[p.ID] = free
	}

	common := intersectAll(freeByParticipant)
	if len(common) == 0 {
		log.Debug("no common availability for %d participants in [%s, %s)",
			len(participants), constraints.RangeStart, constraints.RangeEnd)
		return nil, newError(KindNoAvailability,
			fmt.Sprintf("%d participants share no free time in the requested range", len(participants)))
	}

	candidates := generateSlots(common, participants, constraints, opts.Step)
	if len(candidates) == 0 {
		return nil, newError(KindNoSlotsAfterConstraints,
			fmt.Sprintf("common free time exists but no %s slot satisfies the constraints", constraints.Duration))
	}

	ranked := rank(candidates, participants, constraints, opts)
	if len(ranked) == 0 {
		return nil, newError(KindNoSlotsAfterConstraints, "every candidate slot scored below zero")
	}
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	ids := participantIDs(participants)
	out := make([]models.CandidateSlot, len(ranked))
	for i, c := range ranked {
		out[i] = models.CandidateSlot{Window: c.window, Participants: ids, Score: c.score}
	}
	return out, nil
}

// participantIDs returns the participant ids in input order.
func participantIDs(participants []models.Participant) []string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}

// sortedKeys gives a deterministic fold order for the intersection.
func sortedKeys(m map[string][]interval.Interval) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
