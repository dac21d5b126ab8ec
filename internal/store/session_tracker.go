package store

import (
	"sync"

	"github.com/motivity-labs/support-triage/internal/domain"
)

// SessionTracker owns the per-user chat logs. Retention is capped per user
// (oldest turns evicted first); a cap of zero keeps every turn, which grows
// without bound over the process lifetime.
type SessionTracker struct {
	mu       sync.RWMutex
	maxTurns int
	sessions map[string][]domain.ChatTurn
}

// NewSessionTracker constructs an empty tracker with the given per-user cap.
func NewSessionTracker(maxTurns int) *SessionTracker {
	return &SessionTracker{
		maxTurns: maxTurns,
		sessions: make(map[string][]domain.ChatTurn),
	}
}

// Append records one exchange, creating the log for a new user.
func (s *SessionTracker) Append(userID string, turn domain.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := append(s.sessions[userID], turn)
	if s.maxTurns > 0 && len(log) > s.maxTurns {
		log = log[len(log)-s.maxTurns:]
	}
	s.sessions[userID] = log
}

// History returns the ordered log for a user. Unknown users yield an empty
// sequence, not an error.
func (s *SessionTracker) History(userID string) []domain.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.sessions[userID]
	out := make([]domain.ChatTurn, len(log))
	copy(out, log)
	return out
}
