package driving

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// HistoryService manages persistent chat sessions for the sidebar.
type HistoryService interface {
	// NewSession creates an unsaved session headed by the first user
	// message. The session is persisted on the first recorded turn.
	NewSession(firstMessage string) *domain.Session

	// RecordTurn appends the user message and the assistant answer to the
	// session and persists it. Recording is atomic across both messages:
	// a failed turn must not leave a dangling user-only entry.
	RecordTurn(ctx context.Context, session *domain.Session, userMessage, answer string) error

	// Sessions returns all stored sessions, newest first.
	Sessions(ctx context.Context) ([]domain.Session, error)
}
