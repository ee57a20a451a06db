package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/introscheduler/pkg/models"
)

func TestGetUnknownChatIsNormal(t *testing.T) {
	m := New()

	s := m.Get(42)
	assert.Equal(t, StateNormal, s.State)
	assert.Empty(t, s.CandidateID)
}

func TestUpdateAndGet(t *testing.T) {
	m := New()

	m.Update(1, Session{
		State:       StateChoosingProposal,
		CandidateID: "cand_001",
		MeetingType: models.MeetingIntroHiringManager,
	})

	s := m.Get(1)
	assert.Equal(t, StateChoosingProposal, s.State)
	assert.Equal(t, "cand_001", s.CandidateID)
	assert.False(t, s.Touched.IsZero(), "Update must stamp the session")

	// Sessions are per chat.
	other := m.Get(2)
	assert.Equal(t, StateNormal, other.State)
}

func TestClear(t *testing.T) {
	m := New()

	m.Update(1, Session{State: StateChoosingCandidate})
	m.Clear(1)

	assert.Equal(t, StateNormal, m.Get(1).State)
}

func TestStaleSessionExpires(t *testing.T) {
	m := New()

	m.Update(1, Session{State: StateChoosingProposal, CandidateID: "cand_001"})

	// Age the session past the TTL by hand.
	m.mu.Lock()
	m.sessions[1].Touched = time.Now().Add(-sessionTTL - time.Minute)
	m.mu.Unlock()

	s := m.Get(1)
	require.Equal(t, StateNormal, s.State)
	assert.Empty(t, s.CandidateID)
}
