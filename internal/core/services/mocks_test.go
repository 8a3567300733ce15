package services

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
)

// Shared mock implementations of the driven ports.

// mockEmbedder implements driven.EmbeddingService.
type mockEmbedder struct {
	vector    []float32
	err       error
	calls     int
	batchSize []int // batch sizes observed by EmbedBatch
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.vector == nil {
		return []float32{1, 0, 0}, nil
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	m.batchSize = append(m.batchSize, len(texts))
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 3 }
func (m *mockEmbedder) ModelName() string            { return "mock-embedding" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockCollection implements driven.VectorCollection with preset hits.
type mockCollection struct {
	name     domain.Collection
	hits     []domain.Candidate
	queryErr error
	queries  int
	upserted map[string]domain.Document
}

func newMockCollection(name domain.Collection, hits ...domain.Candidate) *mockCollection {
	return &mockCollection{
		name:     name,
		hits:     hits,
		upserted: make(map[string]domain.Document),
	}
}

func (m *mockCollection) Name() domain.Collection { return m.name }

func (m *mockCollection) Upsert(_ context.Context, doc domain.Document, _ []float32) error {
	m.upserted[doc.ID] = doc
	return nil
}

func (m *mockCollection) Query(_ context.Context, _ []float32, n int) ([]domain.Candidate, error) {
	m.queries++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if n < len(m.hits) {
		return m.hits[:n], nil
	}
	return m.hits, nil
}

func (m *mockCollection) Count(_ context.Context) (int, error) { return len(m.upserted), nil }
func (m *mockCollection) Close() error                         { return nil }

// mockScorer implements driven.RelevanceScorer with per-text scores.
type mockScorer struct {
	scores map[string]float64
	err    error
	calls  int
}

func (m *mockScorer) Score(_ context.Context, _ string, texts []string) ([]float64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]float64, len(texts))
	for i, text := range texts {
		out[i] = m.scores[text]
	}
	return out, nil
}

func (m *mockScorer) ModelName() string            { return "mock-reranker" }
func (m *mockScorer) Ping(_ context.Context) error { return nil }
func (m *mockScorer) Close() error                 { return nil }

// mockLLM implements driven.LLMService and records the messages it saw.
type mockLLM struct {
	response string
	summary  string
	err      error
	messages []driven.ChatMessage
	calls    int
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) Summarise(_ context.Context, _ string, _ int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockClassifier implements driven.ToxicityClassifier with a fixed verdict.
type mockClassifier struct {
	verdict domain.Verdict
	err     error
	calls   int
}

func (m *mockClassifier) Classify(_ context.Context, _ string) (domain.Verdict, error) {
	m.calls++
	if m.err != nil {
		return domain.Verdict{}, m.err
	}
	return m.verdict, nil
}

func (m *mockClassifier) ClassifyBatch(_ context.Context, texts []string) ([]domain.Verdict, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Verdict, len(texts))
	for i := range texts {
		out[i] = m.verdict
	}
	return out, nil
}

func (m *mockClassifier) ModelName() string { return "mock-toxicity" }
func (m *mockClassifier) Close() error      { return nil }

// mockSessionStore implements driven.SessionStore in memory.
type mockSessionStore struct {
	sessions  map[string]domain.Session
	upsertErr error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *mockSessionStore) Upsert(_ context.Context, session domain.Session) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.sessions[session.ConversationID] = session
	return nil
}

func (m *mockSessionStore) ReadAll(_ context.Context) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSessionStore) Close() error { return nil }

// mockCatalogSource implements driven.CatalogSource with fixed records.
type mockCatalogSource struct {
	faq      []domain.FAQEntry
	trips    []domain.Trip
	faqErr   error
	tripsErr error
}

func (m *mockCatalogSource) LoadFAQ(_ context.Context) ([]domain.FAQEntry, error) {
	return m.faq, m.faqErr
}

func (m *mockCatalogSource) LoadTrips(_ context.Context) ([]domain.Trip, error) {
	return m.trips, m.tripsErr
}
