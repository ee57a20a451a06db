package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/korjavin/introscheduler/pkg/invite"
	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/korjavin/introscheduler/pkg/models"
	"github.com/korjavin/introscheduler/pkg/openai"
	"github.com/korjavin/introscheduler/pkg/scheduler"
)

// Service provides message generation functionality
type Service struct {
	openaiClient *openai.Client
	logger       *logger.Logger
}

// New creates a new message service
func New(openaiClient *openai.Client) *Service {
	return &Service{
		openaiClient: openaiClient,
		logger:       logger.New("messages"),
	}
}

// GenerateWelcomeMessage generates a welcome message
func (s *Service) GenerateWelcomeMessage() string {
	msg, err := s.openaiClient.GenerateChatMessage("welcome", map[string]interface{}{
		"purpose": "Help HR coordinators schedule onboarding intro meetings for new hires",
	})
	if err != nil {
		s.logger.Error("Failed to generate welcome message: %v", err)
		return "👋 Welcome! I help schedule onboarding intro meetings between new hires and their managers. Try /candidates to see who is starting soon, or just tell me what to set up."
	}
	return msg
}

// GenerateErrorMessage generates an error message
func (s *Service) GenerateErrorMessage(context string) string {
	msg, err := s.openaiClient.GenerateChatMessage("error", map[string]interface{}{
		"context": context,
	})
	if err != nil {
		s.logger.Error("Failed to generate error message: %v", err)
		return "😢 Sorry, something went wrong. Please try again later."
	}
	return msg
}

// SchedulingFailureMessage phrases a scheduling failure for the user based
// on the classified reason.
func (s *Service) SchedulingFailureMessage(err error) string {
	switch scheduler.KindOf(err) {
	case scheduler.KindNoAvailability:
		return "📭 I couldn't find any time everyone shares in that date range. Try a wider date range."
	case scheduler.KindNoSlotsAfterConstraints:
		return "⏳ There is shared free time, but nothing fits the duration and deadline. Try a shorter meeting or a later deadline."
	case scheduler.KindInvalidConstraints:
		return "🤔 That request doesn't add up: " + err.Error()
	case scheduler.KindInvalidInterval:
		return "📅 One of the calendars returned a broken event, so I stopped rather than guess. Please try again."
	default:
		return s.GenerateErrorMessage("find meeting slots")
	}
}

// FormatCandidateList renders the candidate roster
func FormatCandidateList(candidates []models.Candidate) string {
	if len(candidates) == 0 {
		return "No upcoming new hires found."
	}

	var b strings.Builder
	b.WriteString("🧑‍💼 Upcoming new hires:\n\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s — %s, starts %s (%s)\n",
			i+1, c.Name, c.RoleTitle, c.StartDate.Format("Jan 2"), c.Timezone)
	}
	b.WriteString("\nTell me who to schedule for, e.g. \"intro with hiring manager for Aisha\".")
	return b.String()
}

// FormatProposals renders ranked slot proposals with each participant's
// local time.
func FormatProposals(proposals []models.CandidateSlot, participants []models.Participant, meetingType models.MeetingType) string {
	if len(proposals) == 0 {
		return "No proposals to show."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗓 Best times for %s:\n\n", meetingType)
	for i, p := range proposals {
		marker := fmt.Sprintf("%d.", i+1)
		if i == 0 {
			marker = "⭐"
		}
		fmt.Fprintf(&b, "%s %s (score %.0f)\n", marker,
			p.Window.Start.Format("Mon Jan 2, 15:04 MST"), p.Score)
		for _, pt := range participants {
			loc, err := pt.Location()
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "   %s: %s\n", pt.Name, p.Window.Start.In(loc).Format("15:04"))
		}
	}
	b.WriteString("\nReply with a number to confirm, e.g. \"confirm 1\".")
	return b.String()
}

// FormatInvites renders the sent-invite log
func FormatInvites(invites []invite.Invite) string {
	if len(invites) == 0 {
		return "No invites have been sent yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📧 %d invite(s) sent:\n\n", len(invites))
	for i, inv := range invites {
		fmt.Fprintf(&b, "%d. %s — %s → %s\n",
			i+1, inv.Subject,
			inv.Window.Start.Format("Mon Jan 2 15:04"),
			strings.Join(inv.To, ", "))
	}
	return b.String()
}

// FormatConfirmation renders the post-confirmation summary
func FormatConfirmation(inv *invite.Invite) string {
	return fmt.Sprintf("✅ Invite sent!\n\n%s\n\nScheduled for %s (%d minutes).",
		inv.Subject,
		inv.Window.Start.Format("Monday, January 2 at 15:04 MST"),
		int(inv.Window.Duration().Minutes()))
}

// FormatDeadline renders a deadline for display, or "none".
func FormatDeadline(deadline time.Time) string {
	if deadline.IsZero() {
		return "none"
	}
	return deadline.Format("Mon Jan 2")
}
