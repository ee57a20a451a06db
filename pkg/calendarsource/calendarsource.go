// Package calendarsource is the calendar data provider. It generates a
// deterministic synthetic schedule per manager across two calendar sources
// (the organization's primary calendar and the client override calendar)
// and persists the events in BadgerDB, so every run of the bot sees the
// same calendars. The scheduling engine consumes its output as plain busy
// intervals.
package calendarsource

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/korjavin/introscheduler/pkg/calendar"
	"github.com/korjavin/introscheduler/pkg/directory"
	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/korjavin/introscheduler/pkg/models"
	"github.com/korjavin/introscheduler/pkg/storage"
)

// Event is one persisted calendar event.
type Event struct {
	ID      uuid.UUID       `json:"id"`
	OwnerID string          `json:"owner_id"`
	Source  calendar.Source `json:"source"`
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Title   string          `json:"title"`
}

// Service serves busy intervals per manager and source.
type Service struct {
	store     *storage.Store
	directory *directory.Service
	logger    *logger.Logger
}

// New creates a calendar source backed by the given store and directory.
func New(store *storage.Store, dir *directory.Service) *Service {
	return &Service{
		store:     store,
		directory: dir,
		logger:    logger.New("calendarsource"),
	}
}

// EnsureSeeded generates and persists synthetic events for every manager
// in the directory, covering `days` calendar days starting at `from`.
// Seeding is idempotent per manager and start day.
func (s *Service) EnsureSeeded(from time.Time, days int) error {
	dayKey := from.UTC().Format("2006-01-02")

	for _, m := range s.directory.ListManagers() {
		seedKey := fmt.Sprintf("seeded:%s:%s", m.ID, dayKey)
		seeded, err := s.store.Has(seedKey)
		if err != nil {
			return errors.Wrapf(err, "checking seed marker for %s", m.ID)
		}
		if seeded {
			continue
		}

		events, err := generateEvents(m, from, days)
		if err != nil {
			return errors.Wrapf(err, "generating events for %s", m.ID)
		}
		for _, ev := range events {
			if err := s.store.Set(eventKey(ev), ev); err != nil {
				return errors.Wrapf(err, "storing event %s", ev.ID)
			}
		}
		if err := s.store.Set(seedKey, time.Now().UTC()); err != nil {
			return errors.Wrapf(err, "storing seed marker for %s", m.ID)
		}
		s.logger.Info("Seeded %d synthetic events for manager %s", len(events), m.ID)
	}

	return nil
}

// BusyIntervals returns the busy intervals of one owner from one source
// within [rangeStart, rangeEnd).
func (s *Service) BusyIntervals(ownerID string, source calendar.Source, rangeStart, rangeEnd time.Time) ([]calendar.Busy, error) {
	keys, err := s.store.List(fmt.Sprintf("event:%s:%s:", ownerID, source))
	if err != nil {
		return nil, errors.Wrapf(err, "listing events for %s", ownerID)
	}

	var busy []calendar.Busy
	for _, key := range keys {
		var ev Event
		if err := s.store.Get(key, &ev); err != nil {
			s.logger.Error("Failed to load event %s: %v", key, err)
			continue
		}
		if !ev.Start.Before(rangeEnd) || !ev.End.After(rangeStart) {
			continue
		}
		b, err := calendar.NewBusy(ev.Start, ev.End, ev.Source, ev.OwnerID, ev.Title)
		if err != nil {
			return nil, errors.Wrapf(err, "event %s", ev.ID)
		}
		busy = append(busy, b)
	}

	return busy, nil
}

// BusyCalendars bundles both sources for one owner, the shape the
// scheduling pipeline ingests.
func (s *Service) BusyCalendars(ownerID string, rangeStart, rangeEnd time.Time) (primary, override []calendar.Busy, err error) {
	primary, err = s.BusyIntervals(ownerID, calendar.SourcePrimary, rangeStart, rangeEnd)
	if err != nil {
		return nil, nil, err
	}
	override, err = s.BusyIntervals(ownerID, calendar.SourceOverride, rangeStart, rangeEnd)
	if err != nil {
		return nil, nil, err
	}
	return primary, override, nil
}

func eventKey(ev Event) string {
	return fmt.Sprintf("event:%s:%s:%s:%s", ev.OwnerID, ev.Source, ev.Start.UTC().Format(time.RFC3339), ev.ID)
}

// generateEvents builds the deterministic synthetic schedule for one
// manager: a daily standup and an every-other-day team meeting on the
// primary calendar, plus client syncs and reviews on the override calendar
// for managers that have a client calendar. Weekends stay empty.
func generateEvents(m models.Manager, from time.Time, days int) ([]Event, error) {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown timezone %q", m.Timezone)
	}

	start := from.In(loc)
	_, hasClient := m.CalendarIDs["client"]

	var events []Event
	add := func(source calendar.Source, day time.Time, startHour, startMin, endHour, endMin int, title string) {
		ev := Event{
			OwnerID: m.ID,
			Source:  source,
			Start:   time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, loc).UTC(),
			End:     time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, loc).UTC(),
			Title:   title,
		}
		// Content-derived ids keep reseeding idempotent.
		ev.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s|%s|%s|%s", m.ID, source, ev.Start, title)))
		events = append(events, ev)
	}

	for offset := 0; offset < days; offset++ {
		day := start.AddDate(0, 0, offset)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		add(calendar.SourcePrimary, day, 9, 0, 9, 30, "Daily Standup")
		if offset%2 == 0 {
			add(calendar.SourcePrimary, day, 14, 0, 15, 0, "Team Meeting")
		}

		if hasClient {
			if offset%3 == 0 {
				add(calendar.SourceOverride, day, 11, 0, 12, 0, "Client Sync")
			}
			if offset%4 == 1 {
				add(calendar.SourceOverride, day, 16, 0, 17, 0, "Client Review")
			}
		}
	}

	return events, nil
}
