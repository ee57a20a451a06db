// Package invite formats meeting invites for a confirmed proposal and
// records them instead of sending: in this deployment delivery is mocked,
// so every invite is persisted in BadgerDB and retrievable for the
// /invites command.
package invite

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/korjavin/introscheduler/pkg/directory"
	"github.com/korjavin/introscheduler/pkg/interval"
	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/korjavin/introscheduler/pkg/models"
	"github.com/korjavin/introscheduler/pkg/storage"
)

// Invite is one recorded meeting invite.
type Invite struct {
	ID          uuid.UUID          `json:"id"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	Body        string             `json:"body"`
	MeetingType models.MeetingType `json:"meeting_type"`
	Window      interval.Interval  `json:"window"`
	SentAt      time.Time          `json:"sent_at"`
}

// Service formats and records meeting invites.
type Service struct {
	store     *storage.Store
	directory *directory.Service
	logger    *logger.Logger
}

// New creates a new invite service.
func New(store *storage.Store, dir *directory.Service) *Service {
	return &Service{
		store:     store,
		directory: dir,
		logger:    logger.New("invite"),
	}
}

// SendMeetingInvite builds the invite for a confirmed slot and records it.
func (s *Service) SendMeetingInvite(slot models.CandidateSlot, candidateID string, meetingType models.MeetingType) (*Invite, error) {
	candidate, err := s.directory.CandidateByID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve candidate: %w", err)
	}

	var to []string
	var attendees []string
	var timeLines []string

	for _, pid := range slot.Participants {
		name, email, role, tz, err := s.participantDetails(pid, candidate)
		if err != nil {
			s.logger.Warn("Skipping unknown participant %s: %v", pid, err)
			continue
		}
		to = append(to, email)
		attendees = append(attendees, fmt.Sprintf("• %s (%s) - %s", name, email, role))

		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q for %s: %w", tz, pid, err)
		}
		local := slot.Window.Start.In(loc)
		timeLines = append(timeLines, fmt.Sprintf("• %s: %s", name, local.Format("Monday, January 2, 2006 at 3:04 PM MST")))
	}

	subject := fmt.Sprintf("Introduction Meeting: %s - %s", candidate.Name, meetingType)
	body := fmt.Sprintf(`Hi %s,

As part of your onboarding we would like to schedule an %s.

📅 Proposed meeting time:
%s
• Duration: %d minutes

Attendees:
%s

Please reply to this email if the proposed time does not work for you.

Best regards,
Talent Acquisition Team`,
		candidate.Name,
		strings.ToLower(string(meetingType)),
		strings.Join(timeLines, "\n"),
		int(slot.Window.Duration().Minutes()),
		strings.Join(attendees, "\n"))

	inv := &Invite{
		ID:          uuid.New(),
		To:          to,
		Subject:     subject,
		Body:        body,
		MeetingType: meetingType,
		Window:      slot.Window,
		SentAt:      time.Now().UTC(),
	}

	// Fixed-width timestamp so key order matches send order.
	key := fmt.Sprintf("invite:%s:%s", inv.SentAt.Format("20060102T150405.000000000"), inv.ID)
	if err := s.store.Set(key, inv); err != nil {
		return nil, fmt.Errorf("failed to record invite: %w", err)
	}

	s.logger.Info("Recorded invite %s for %s at %s", inv.ID, candidate.Name, slot.Window.Start)
	return inv, nil
}

// SentInvites returns all recorded invites in send order.
func (s *Service) SentInvites() ([]Invite, error) {
	keys, err := s.store.List("invite:")
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}

	invites := make([]Invite, 0, len(keys))
	for _, key := range keys {
		var inv Invite
		if err := s.store.Get(key, &inv); err != nil {
			s.logger.Error("Failed to load invite %s: %v", key, err)
			continue
		}
		invites = append(invites, inv)
	}
	return invites, nil
}

func (s *Service) participantDetails(pid string, candidate models.Candidate) (name, email, role, tz string, err error) {
	if pid == candidate.ID {
		return candidate.Name, candidate.Email, candidate.RoleTitle, candidate.Timezone, nil
	}
	m, err := s.directory.ManagerByID(pid)
	if err != nil {
		return "", "", "", "", err
	}
	return m.Name, m.Email, string(m.Role), m.Timezone, nil
}
