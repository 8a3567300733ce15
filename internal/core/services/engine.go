package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
	"github.com/nomad-labs/nomad-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.BotService = (*Engine)(nil)

// RejectionMessage is the canned safety reply for turns blocked by the
// toxicity gate.
const RejectionMessage = "Dear User\n" +
	"Your behaviour is very toxic and I will not help you if you will not stop acting this way!\n" +
	"I am a cybernetic organism and I will hunt you down if you try it one more time!!!"

// DefaultRetrieveN is how many candidates each collection query returns
// before reranking.
const DefaultRetrieveN = 5

// EngineOptions tunes the pipeline.
type EngineOptions struct {
	// RetrieveN is the per-collection candidate count (default 5).
	RetrieveN int

	// TopK is the reranker truncation size (default 3).
	TopK int

	// MinScore is the reranker score cutoff. Nil means the default
	// (0.5); the pointer keeps an explicit zero distinct from unset,
	// since raw cross-encoder scores can be negative.
	MinScore *float64

	// ToxicityThreshold is the gate's confidence threshold (default 0.8).
	ToxicityThreshold float64
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.RetrieveN <= 0 {
		o.RetrieveN = DefaultRetrieveN
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.MinScore == nil {
		minScore := DefaultMinScore
		o.MinScore = &minScore
	}
	if o.ToxicityThreshold == 0 {
		o.ToxicityThreshold = domain.DefaultToxicityThreshold
	}
	return o
}

// Engine orchestrates one user turn: gate, retrieve, rerank, assemble,
// generate. It is stateful only for the duration of one call and holds no
// cross-turn memory; conversational continuity lives entirely in the
// history collaborator.
type Engine struct {
	gate      driven.ToxicityClassifier
	retriever *Retriever
	reranker  *Reranker
	llm       driven.LLMService
	opts      EngineOptions
}

// NewEngine creates the bot engine. All collaborators are constructed
// once and injected; the engine never re-instantiates a model per call.
// The gate may be nil, in which case every turn proceeds unmoderated.
func NewEngine(
	gate driven.ToxicityClassifier,
	retriever *Retriever,
	reranker *Reranker,
	llm driven.LLMService,
	opts EngineOptions,
) *Engine {
	return &Engine{
		gate:      gate,
		retriever: retriever,
		reranker:  reranker,
		llm:       llm,
		opts:      opts.withDefaults(),
	}
}

// ProcessUserInput runs the full pipeline for a single user message.
func (e *Engine) ProcessUserInput(ctx context.Context, input string) (domain.TurnResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.TurnResult{}, domain.ErrEmptyQuery
	}

	logger.Section("Toxicity Gate")
	verdict := e.classify(ctx, input)
	if verdict.IsToxic(e.opts.ToxicityThreshold) {
		logger.Info("Input rejected as toxic (score %.3f)", verdict.Score)
		return domain.TurnResult{
			Answer:   RejectionMessage,
			Rejected: true,
			Verdict:  verdict,
		}, nil
	}
	if verdict.Decide(e.opts.ToxicityThreshold) == domain.DecisionUnknown {
		// Fail-open: unknown verdicts proceed, but leave a trace of the
		// moderation gap.
		logger.Warn("Toxicity verdict not actionable (label=%s score=%.3f), proceeding", verdict.Label, verdict.Score)
	}

	logger.Section("Retrieval")
	if e.retriever == nil {
		return domain.TurnResult{}, domain.ErrCollectionUnavailable
	}
	retrieved, err := e.retriever.QueryAll(ctx, input, e.opts.RetrieveN)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("retrieve: %w", err)
	}

	logger.Section("Reranking")
	if e.reranker == nil {
		return domain.TurnResult{}, domain.ErrRerankUnavailable
	}
	ranked, err := e.reranker.Rerank(ctx, input, retrieved.Merged(), e.opts.TopK, *e.opts.MinScore)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("rerank: %w", err)
	}

	contextBlock := AssembleContext(ranked)

	logger.Section("Generation")
	answer, err := e.generate(ctx, input, contextBlock, retrieved)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("generate: %w", err)
	}

	return domain.TurnResult{
		Answer:  answer,
		Context: contextBlock,
		Verdict: verdict,
	}, nil
}

// classify runs the gate. A nil or failing classifier yields an
// unavailable verdict; moderation being down never fails the turn.
func (e *Engine) classify(ctx context.Context, input string) domain.Verdict {
	if e.gate == nil {
		logger.Debug("No toxicity classifier configured")
		return domain.Verdict{Label: domain.LabelUnavailable}
	}
	verdict, err := e.gate.Classify(ctx, input)
	if err != nil {
		logger.Warn("Toxicity check failed: %v", err)
		return domain.Verdict{Label: domain.LabelUnavailable}
	}
	logger.Debug("Verdict: %s (%.3f)", verdict.Label, verdict.Score)
	return verdict
}

// generate issues exactly one chat completion at temperature 0 and
// returns the model's response verbatim. Provider failures are not
// retried.
func (e *Engine) generate(
	ctx context.Context, question, contextBlock string, retrieved domain.RetrievalSet,
) (string, error) {
	if e.llm == nil {
		return "", domain.ErrGenerationUnavailable
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: buildSystemPrompt(contextBlock, retrieved)},
		{Role: "user", Content: question},
	}

	answer, err := e.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: 0})
	if err != nil {
		return "", err
	}
	return answer, nil
}

// buildSystemPrompt embeds the assembled context and short previews of the
// top raw candidate from each collection as additional grounding.
func buildSystemPrompt(contextBlock string, retrieved domain.RetrievalSet) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant for the Nomad AI travel agency.\n")
	b.WriteString("Use the following context to answer the user's question.\n")
	b.WriteString("If the context does not provide enough information, say so.\n")

	b.WriteString("\nContext:\n")
	b.WriteString(contextBlock)

	if top := retrieved.TopFAQ(); top != nil {
		b.WriteString("\nClosest FAQ match:\n")
		b.WriteString(preview(top.Document.Text))
		b.WriteString("\n")
	}
	if top := retrieved.TopTrip(); top != nil {
		b.WriteString("\nClosest trip match:\n")
		b.WriteString(preview(top.Document.Text))
		b.WriteString("\n")
	}

	if contextBlock == NoContextSentinel {
		b.WriteString("\nNo grounding documents are available; tell the user when you cannot answer from the knowledge base.\n")
	}

	return b.String()
}

// previewLimit bounds the raw candidate previews in the system prompt.
const previewLimit = 200

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
