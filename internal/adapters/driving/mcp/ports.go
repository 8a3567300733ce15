package mcp

import (
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Bot answers free-text questions through the retrieval pipeline.
	Bot driving.BotService

	// Trips answers structured catalog lookups.
	Trips driving.TripService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Bot == nil {
		return ErrMissingBotService
	}
	if p.Trips == nil {
		return ErrMissingTripService
	}
	return nil
}
