package tui

import "github.com/nomad-labs/nomad-cli/internal/core/domain"

// answerMsg carries the pipeline result for the pending question.
type answerMsg struct {
	result domain.TurnResult
	err    error
}

// sessionsLoadedMsg carries the stored sessions for the sidebar.
type sessionsLoadedMsg struct {
	sessions []domain.Session
	err      error
}

// turnRecordedMsg reports the outcome of persisting a turn.
type turnRecordedMsg struct {
	err error
}
