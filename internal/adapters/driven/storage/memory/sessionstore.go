package memory

import (
	"context"
	"sync"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
	}
}

// Upsert inserts or replaces a stored session.
func (s *SessionStore) Upsert(_ context.Context, session domain.Session) error {
	if session.ConversationID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ConversationID] = session
	return nil
}

// ReadAll returns every stored session.
func (s *SessionStore) ReadAll(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Close releases resources.
func (s *SessionStore) Close() error {
	return nil
}
