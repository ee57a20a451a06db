package assistant

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/introscheduler/pkg/calendarsource"
	"github.com/korjavin/introscheduler/pkg/config"
	"github.com/korjavin/introscheduler/pkg/directory"
	"github.com/korjavin/introscheduler/pkg/invite"
	"github.com/korjavin/introscheduler/pkg/models"
	"github.com/korjavin/introscheduler/pkg/storage"
)

func newAssistant(t *testing.T) (*Service, *invite.Service) {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	dir := directory.New()
	cal := calendarsource.New(store, dir)
	inv := invite.New(store, dir)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	require.NoError(t, cal.EnsureSeeded(today, 30))

	cfg := &config.Config{
		BusinessHoursStart: 9,
		BusinessHoursEnd:   18,
		StepMinutes:        15,
		TopK:               5,
		LeadTimeHours:      24,
		CalendarSeedDays:   30,
		WeightEarliness:    60,
		WeightCentering:    30,
		WeightDayOfWeek:    20,
	}
	return New(dir, cal, inv, cfg), inv
}

func TestProposeFindsSlots(t *testing.T) {
	svc, _ := newAssistant(t)

	p, err := svc.Propose("cand_001", models.MeetingIntroHiringManager, 30, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, "cand_001", p.Candidate.ID)
	require.Len(t, p.Participants, 2)
	assert.Equal(t, "cand_001", p.Participants[0].ID)
	assert.Equal(t, "mgr_001", p.Participants[1].ID)

	require.NotEmpty(t, p.Slots)
	assert.LessOrEqual(t, len(p.Slots), 5)
	for _, s := range p.Slots {
		assert.Equal(t, 30*time.Minute, s.Window.Duration())
		assert.ElementsMatch(t, []string{"cand_001", "mgr_001"}, s.Participants)
	}
	for i := 1; i < len(p.Slots); i++ {
		assert.GreaterOrEqual(t, p.Slots[i-1].Score, p.Slots[i].Score,
			"proposals must come best first")
	}
}

func TestProposeDefaultDuration(t *testing.T) {
	svc, _ := newAssistant(t)

	p, err := svc.Propose("cand_002", models.MeetingIntroReportingManager, 0, time.Time{})
	require.NoError(t, err)
	require.NotEmpty(t, p.Slots)
	for _, s := range p.Slots {
		assert.Equal(t, time.Duration(DefaultDurationMinutes)*time.Minute, s.Window.Duration())
	}
}

func TestProposePicksManagerByMeetingType(t *testing.T) {
	svc, _ := newAssistant(t)

	p, err := svc.Propose("cand_001", models.MeetingIntroHRBP, 30, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "mgr_003", p.Participants[1].ID)
}

func TestProposeUnknownCandidate(t *testing.T) {
	svc, _ := newAssistant(t)

	_, err := svc.Propose("cand_999", models.MeetingIntroHiringManager, 30, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, directory.ErrNotFound))
}

func TestProposeUnsupportedMeetingType(t *testing.T) {
	svc, _ := newAssistant(t)

	// No buddy is on record for any candidate.
	_, err := svc.Propose("cand_001", models.MeetingIntroBuddy, 30, time.Time{})
	require.Error(t, err)
}

func TestConfirmSendsInvite(t *testing.T) {
	svc, invites := newAssistant(t)

	p, err := svc.Propose("cand_001", models.MeetingIntroHiringManager, 30, time.Time{})
	require.NoError(t, err)
	require.NotEmpty(t, p.Slots)

	inv, err := svc.Confirm(p, 0)
	require.NoError(t, err)
	assert.Equal(t, p.Slots[0].Window, inv.Window)
	assert.ElementsMatch(t, []string{"aisha.patel@example.com", "rajesh.kumar@example.com"}, inv.To)

	sent, err := invites.SentInvites()
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestConfirmIndexOutOfRange(t *testing.T) {
	svc, _ := newAssistant(t)

	p, err := svc.Propose("cand_001", models.MeetingIntroHiringManager, 30, time.Time{})
	require.NoError(t, err)

	_, err = svc.Confirm(p, len(p.Slots))
	require.Error(t, err)
	_, err = svc.Confirm(p, -1)
	require.Error(t, err)
}
