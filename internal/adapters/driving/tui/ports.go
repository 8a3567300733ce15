// Package tui provides the interactive terminal chat for Nomad.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"errors"

	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
)

// ErrMissingBotService is returned when the bot service is not provided.
var ErrMissingBotService = errors.New("tui: bot service is required")

// Ports aggregates all driving port interfaces required by the chat UI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Bot answers user messages through the retrieval pipeline.
	Bot driving.BotService

	// History persists sessions for the sidebar. Optional: without it
	// the chat still works but nothing is stored.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Bot == nil {
		return ErrMissingBotService
	}
	return nil
}
