package driving

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// BotService processes one user turn through the full pipeline:
// gate, retrieve, rerank, assemble, generate.
type BotService interface {
	// ProcessUserInput runs the pipeline for a single user message. The
	// engine holds no cross-turn memory; each call is independent of
	// prior turns.
	ProcessUserInput(ctx context.Context, input string) (domain.TurnResult, error)
}
