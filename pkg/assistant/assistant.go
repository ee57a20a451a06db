// Package assistant orchestrates one scheduling request end to end: it
// gathers participant records from the directory, busy intervals from the
// calendar source, runs the scheduling engine and hands confirmed slots to
// the invite service. All chat concerns stay outside; this service is what
// the bot front-end calls.
package assistant

import (
	"fmt"
	"time"

	"github.com/korjavin/introscheduler/pkg/calendarsource"
	"github.com/korjavin/introscheduler/pkg/config"
	"github.com/korjavin/introscheduler/pkg/directory"
	"github.com/korjavin/introscheduler/pkg/invite"
	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/korjavin/introscheduler/pkg/models"
	"github.com/korjavin/introscheduler/pkg/scheduler"
)

// DefaultDurationMinutes is used when a request does not specify one.
const DefaultDurationMinutes = 30

// Window paddings around the candidate's start date, mirroring how
// onboarding intros are booked: a few days before the start date through
// the first week after it.
const (
	daysBeforeStart = 3
	daysAfterStart  = 7
)

// Service coordinates the scheduling collaborators.
type Service struct {
	directory *directory.Service
	calendars *calendarsource.Service
	invites   *invite.Service
	cfg       *config.Config
	logger    *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a new assistant service.
func New(dir *directory.Service, cal *calendarsource.Service, inv *invite.Service, cfg *config.Config) *Service {
	return &Service{
		directory: dir,
		calendars: cal,
		invites:   inv,
		cfg:       cfg,
		logger:    logger.New("assistant"),
		now:       time.Now,
	}
}

// Proposal bundles what the front-end needs to present ranked slots.
type Proposal struct {
	Candidate    models.Candidate
	MeetingType  models.MeetingType
	Participants []models.Participant
	Slots        []models.CandidateSlot
}

// Propose finds the top meeting slots for a candidate's intro of the given
// type. Zero durationMinutes and zero deadline fall back to defaults
// derived from the candidate's start date.
func (s *Service) Propose(candidateID string, meetingType models.MeetingType, durationMinutes int, deadline time.Time) (*Proposal, error) {
	candidate, err := s.directory.CandidateByID(candidateID)
	if err != nil {
		return nil, err
	}

	manager, err := s.managerFor(candidate, meetingType)
	if err != nil {
		return nil, err
	}

	hours := models.BusinessHours{StartHour: s.cfg.BusinessHoursStart, EndHour: s.cfg.BusinessHoursEnd}
	participants := []models.Participant{
		candidate.Participant(hours),
		manager.Participant(hours),
	}

	now := s.now().UTC()
	rangeStart := candidate.StartDate.AddDate(0, 0, -daysBeforeStart)
	if rangeStart.Before(now) {
		rangeStart = now.Truncate(24 * time.Hour)
	}
	rangeEnd := candidate.StartDate.AddDate(0, 0, daysAfterStart)
	if !rangeEnd.After(rangeStart) {
		rangeEnd = rangeStart.AddDate(0, 0, 7)
	}

	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}

	// The new hire has no calendar yet; only the manager contributes busy time.
	primary, override, err := s.calendars.BusyCalendars(manager.ID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendars for %s: %w", manager.ID, err)
	}
	busy := map[string]scheduler.BusyCalendars{
		manager.ID: {Primary: primary, Override: override},
	}

	constraints := scheduler.MeetingConstraints{
		Duration:   time.Duration(durationMinutes) * time.Minute,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Deadline:   deadline,
		Now:        now,
		LeadTime:   time.Duration(s.cfg.LeadTimeHours) * time.Hour,
	}
	opts := scheduler.Options{
		Step: time.Duration(s.cfg.StepMinutes) * time.Minute,
		Weights: scheduler.Weights{
			Earliness: s.cfg.WeightEarliness,
			Centering: s.cfg.WeightCentering,
			DayOfWeek: s.cfg.WeightDayOfWeek,
		},
		LowPreferenceDays: s.cfg.LowPreferenceDays,
	}

	slots, err := scheduler.ProposeMeetingSlots(participants, busy, constraints, s.cfg.TopK, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Found %d slot(s) for %s / %s", len(slots), candidate.Name, meetingType)
	return &Proposal{
		Candidate:    candidate,
		MeetingType:  meetingType,
		Participants: participants,
		Slots:        slots,
	}, nil
}

// Confirm sends the invite for one of a proposal's slots.
func (s *Service) Confirm(p *Proposal, slotIndex int) (*invite.Invite, error) {
	if slotIndex < 0 || slotIndex >= len(p.Slots) {
		return nil, fmt.Errorf("proposal %d does not exist, have %d", slotIndex+1, len(p.Slots))
	}
	return s.invites.SendMeetingInvite(p.Slots[slotIndex], p.Candidate.ID, p.MeetingType)
}

// managerFor picks the counterpart that the meeting type requires.
func (s *Service) managerFor(c models.Candidate, meetingType models.MeetingType) (models.Manager, error) {
	personas, err := s.directory.RelatedPersonas(c.ID)
	if err != nil {
		return models.Manager{}, err
	}

	var role models.Role
	switch meetingType {
	case models.MeetingIntroHiringManager:
		role = models.RoleHiringManager
	case models.MeetingIntroReportingManager:
		role = models.RoleReportingManager
	case models.MeetingIntroHRBP:
		role = models.RoleHRBP
	default:
		return models.Manager{}, fmt.Errorf("unsupported meeting type %q", meetingType)
	}

	m, ok := personas[role]
	if !ok {
		return models.Manager{}, fmt.Errorf("candidate %s has no %s on record", c.Name, role)
	}
	return m, nil
}
