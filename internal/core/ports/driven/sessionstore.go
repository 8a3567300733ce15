package driven

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// SessionStore persists chat sessions for the history sidebar.
// Sessions are stored whole, keyed by conversation id.
type SessionStore interface {
	// Upsert inserts the session or replaces the stored copy with the
	// same conversation id.
	Upsert(ctx context.Context, session domain.Session) error

	// ReadAll returns every stored session.
	ReadAll(ctx context.Context) ([]domain.Session, error)

	// Close releases resources.
	Close() error
}
