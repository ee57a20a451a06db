package state

import (
	"sync"
	"time"

	"github.com/korjavin/introscheduler/pkg/models"
)

// State represents where a chat is in the scheduling conversation
type State string

const (
	// StateNormal is the idle state
	StateNormal State = "normal"
	// StateChoosingCandidate means the bot asked which new hire to schedule for
	StateChoosingCandidate State = "choosing_candidate"
	// StateChoosingProposal means proposals were shown and the bot is waiting
	// for the user to pick one
	StateChoosingProposal State = "choosing_proposal"
)

// sessionTTL is how long a stalled conversation keeps its context before
// the chat falls back to normal.
const sessionTTL = 30 * time.Minute

// Session is the per-chat scheduling conversation context
type Session struct {
	State       State
	CandidateID string
	MeetingType models.MeetingType
	Proposals   []models.CandidateSlot
	Touched     time.Time
}

// Manager manages chat sessions
type Manager struct {
	sessions map[int64]*Session
	mu       sync.Mutex
}

// New creates a new state manager
func New() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session for a chat, creating an idle one if needed.
// Sessions older than the TTL are reset to normal.
func (m *Manager) Get(chatID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok || time.Since(s.Touched) > sessionTTL {
		delete(m.sessions, chatID)
		return Session{State: StateNormal}
	}
	return *s
}

// Update replaces the session for a chat and refreshes its timestamp
func (m *Manager) Update(chatID int64, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.Touched = time.Now()
	m.sessions[chatID] = &s
}

// Clear resets a chat back to the idle state
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
