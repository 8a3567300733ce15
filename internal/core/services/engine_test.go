package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// pipelineFixture wires an engine with observable mocks.
type pipelineFixture struct {
	gate     *mockClassifier
	embedder *mockEmbedder
	faq      *mockCollection
	trips    *mockCollection
	scorer   *mockScorer
	llm      *mockLLM
	engine   *Engine
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		gate:     &mockClassifier{verdict: domain.Verdict{Label: domain.LabelNonToxic, Score: 0.05}},
		embedder: &mockEmbedder{},
		faq:      newMockCollection(domain.CollectionFAQ),
		trips:    newMockCollection(domain.CollectionTrips),
		scorer:   &mockScorer{scores: map[string]float64{}},
		llm:      &mockLLM{response: "an answer"},
	}
	f.engine = NewEngine(
		f.gate,
		NewRetriever(f.embedder, f.faq, f.trips),
		NewReranker(f.scorer),
		f.llm,
		EngineOptions{},
	)
	return f
}

func (f *pipelineFixture) systemPrompt(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.llm.messages)
	require.Equal(t, "system", f.llm.messages[0].Role)
	return f.llm.messages[0].Content
}

func TestEngineOptions_Defaults(t *testing.T) {
	opts := EngineOptions{}.withDefaults()

	assert.Equal(t, DefaultRetrieveN, opts.RetrieveN)
	assert.Equal(t, DefaultTopK, opts.TopK)
	require.NotNil(t, opts.MinScore)
	assert.InDelta(t, DefaultMinScore, *opts.MinScore, 1e-9)
	assert.InDelta(t, domain.DefaultToxicityThreshold, opts.ToxicityThreshold, 1e-9)
}

func TestEngineOptions_ExplicitZeroMinScoreKept(t *testing.T) {
	zero := 0.0
	opts := EngineOptions{MinScore: &zero}.withDefaults()

	require.NotNil(t, opts.MinScore)
	assert.InDelta(t, 0.0, *opts.MinScore, 1e-9)
}

func TestEngine_PolicyQuestionEndToEnd(t *testing.T) {
	f := newPipelineFixture()
	policyText := "Question: What is your cancellation policy?\nAnswer: Full refund up to 14 days before departure."
	f.faq.hits = []domain.Candidate{{
		Document: domain.Document{
			ID:         "faq_0",
			Collection: domain.CollectionFAQ,
			Text:       policyText,
			FAQ:        &domain.FAQEntry{Question: "What is your cancellation policy?", Answer: "Full refund up to 14 days before departure.", Category: "policy"},
		},
		Distance: 0.12,
	}}
	f.scorer.scores[policyText] = 0.91

	result, err := f.engine.ProcessUserInput(context.Background(), "What is your cancellation policy?")

	require.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.NotEmpty(t, result.Answer)
	assert.Contains(t, result.Context, "<Relevant Document #1>")
	assert.Contains(t, result.Context, "Full refund up to 14 days")

	// The generator saw the assembled context and the user question.
	prompt := f.systemPrompt(t)
	assert.Contains(t, prompt, result.Context)
	require.Len(t, f.llm.messages, 2)
	assert.Equal(t, "user", f.llm.messages[1].Role)
	assert.Equal(t, "What is your cancellation policy?", f.llm.messages[1].Content)
}

func TestEngine_ToxicInputShortCircuits(t *testing.T) {
	f := newPipelineFixture()
	f.gate.verdict = domain.Verdict{Label: domain.LabelToxic, Score: 0.99}

	result, err := f.engine.ProcessUserInput(context.Background(), "you are all idiots")

	require.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Equal(t, RejectionMessage, result.Answer)
	assert.Empty(t, result.Context)

	// Retrieval, reranking and generation were never reached.
	assert.Zero(t, f.embedder.calls)
	assert.Zero(t, f.faq.queries)
	assert.Zero(t, f.trips.queries)
	assert.Zero(t, f.scorer.calls)
	assert.Zero(t, f.llm.calls)
}

func TestEngine_LowConfidenceToxicProceeds(t *testing.T) {
	f := newPipelineFixture()
	f.gate.verdict = domain.Verdict{Label: domain.LabelToxic, Score: 0.5}

	result, err := f.engine.ProcessUserInput(context.Background(), "where to go?")

	require.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, 1, f.llm.calls)
}

func TestEngine_GateFailureFailsOpen(t *testing.T) {
	f := newPipelineFixture()
	f.gate.err = errors.New("model failed to load")

	result, err := f.engine.ProcessUserInput(context.Background(), "where to go?")

	require.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, domain.LabelUnavailable, result.Verdict.Label)
	assert.Equal(t, 1, f.llm.calls)
}

func TestEngine_NilGateProceeds(t *testing.T) {
	f := newPipelineFixture()
	f.engine = NewEngine(nil, NewRetriever(f.embedder, f.faq, f.trips), NewReranker(f.scorer), f.llm, EngineOptions{})

	result, err := f.engine.ProcessUserInput(context.Background(), "where to go?")

	require.NoError(t, err)
	assert.Equal(t, domain.LabelUnavailable, result.Verdict.Label)
}

func TestEngine_NoSurvivorsGeneratesFromSentinel(t *testing.T) {
	f := newPipelineFixture()
	f.faq.hits = []domain.Candidate{faqCandidate("faq_0", "unrelated text", 0.9)}
	f.scorer.scores["unrelated text"] = 0.1

	result, err := f.engine.ProcessUserInput(context.Background(), "completely novel question")

	require.NoError(t, err)
	assert.Equal(t, NoContextSentinel, result.Context)

	// The generator is still invoked and told there is no grounding.
	assert.Equal(t, 1, f.llm.calls)
	assert.Contains(t, f.systemPrompt(t), NoContextSentinel)
}

func TestEngine_PromptIncludesTopCandidatePreviews(t *testing.T) {
	f := newPipelineFixture()
	f.faq.hits = []domain.Candidate{faqCandidate("faq_0", "faq preview text", 0.2)}
	f.trips.hits = []domain.Candidate{tripCandidate("trip_0", "trip preview text", 0.3)}
	f.scorer.scores["faq preview text"] = 0.8
	f.scorer.scores["trip preview text"] = 0.7

	_, err := f.engine.ProcessUserInput(context.Background(), "anything to rome?")

	require.NoError(t, err)
	prompt := f.systemPrompt(t)
	assert.Contains(t, prompt, "faq preview text")
	assert.Contains(t, prompt, "trip preview text")
}

func TestEngine_EmptyInput(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.engine.ProcessUserInput(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.Zero(t, f.gate.calls)
}

func TestEngine_GenerationFailureFailsTurn(t *testing.T) {
	f := newPipelineFixture()
	f.llm.err = errors.New("rate limited")

	_, err := f.engine.ProcessUserInput(context.Background(), "where to go?")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate")
}

func TestEngine_RerankFailureFailsTurn(t *testing.T) {
	f := newPipelineFixture()
	f.faq.hits = []domain.Candidate{faqCandidate("faq_0", "a", 0.1)}
	f.scorer.err = errors.New("scorer down")

	_, err := f.engine.ProcessUserInput(context.Background(), "where to go?")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rerank")
	assert.Zero(t, f.llm.calls)
}

func TestEngine_NilLLM(t *testing.T) {
	f := newPipelineFixture()
	f.engine = NewEngine(f.gate, NewRetriever(f.embedder, f.faq, f.trips), NewReranker(f.scorer), nil, EngineOptions{})

	_, err := f.engine.ProcessUserInput(context.Background(), "where to go?")

	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}
