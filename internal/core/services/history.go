package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
	"github.com/nomad-labs/nomad-cli/internal/logger"
)

// Ensure History implements the interface.
var _ driving.HistoryService = (*History)(nil)

// headerSummaryInput caps how much conversation text is sent to the LLM
// when summarising a session header.
const headerSummaryInput = 500

// History manages persistent chat sessions. The LLM service is optional;
// when present it refines session headers, otherwise headers are the
// truncated first user message.
type History struct {
	store driven.SessionStore
	llm   driven.LLMService
	now   func() time.Time
}

// NewHistory creates a history service over the session store.
func NewHistory(store driven.SessionStore, llm driven.LLMService) *History {
	return &History{
		store: store,
		llm:   llm,
		now:   time.Now,
	}
}

// NewSession creates an unsaved session headed by the first user message.
func (s *History) NewSession(firstMessage string) *domain.Session {
	return &domain.Session{
		ConversationID: uuid.NewString(),
		Header:         domain.DeriveHeader(firstMessage),
		CreatedAt:      s.now(),
	}
}

// RecordTurn appends the user message and the assistant answer and
// persists the session. The two messages are recorded together only
// after generation succeeded; a failed turn leaves no dangling user-only
// entry.
func (s *History) RecordTurn(ctx context.Context, session *domain.Session, userMessage, answer string) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	if s.store == nil {
		return fmt.Errorf("record turn: %w", domain.ErrNotFound)
	}

	at := s.now()
	session.AppendTurn(domain.RoleHuman, userMessage, at)
	session.AppendTurn(domain.RoleAssistant, answer, at)

	if err := s.store.Upsert(ctx, *session); err != nil {
		// Roll the in-memory turns back so a retry does not duplicate them.
		session.Turns = session.Turns[:len(session.Turns)-2]
		return fmt.Errorf("persist session %s: %w", session.ConversationID, err)
	}
	return nil
}

// Sessions returns all stored sessions, newest first.
func (s *History) Sessions(ctx context.Context) ([]domain.Session, error) {
	if s.store == nil {
		return nil, nil
	}
	sessions, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// RefreshHeader asks the LLM for a short summary header once a session has
// content. Best effort: on any failure the derived header stays.
func (s *History) RefreshHeader(ctx context.Context, session *domain.Session) {
	if s.llm == nil || session == nil || len(session.Turns) == 0 {
		return
	}
	content := session.Turns[0].Content
	if len(content) > headerSummaryInput {
		content = content[:headerSummaryInput]
	}
	summary, err := s.llm.Summarise(ctx, content, 30)
	if err != nil || summary == "" {
		logger.Debug("Header summarisation skipped: %v", err)
		return
	}
	session.Header = domain.DeriveHeader(summary)
}
