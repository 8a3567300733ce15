// Package tei provides a relevance scorer backed by a Text Embeddings
// Inference server's /rerank endpoint.
package tei

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
)

// Ensure Reranker implements the interface.
var _ driven.RelevanceScorer = (*Reranker)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultModel   = "mixedbread-ai/mxbai-rerank-base-v1"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the TEI reranker.
type Config struct {
	// BaseURL is the TEI server address (default: http://localhost:8080).
	BaseURL string

	// APIKey is an optional bearer token for hosted deployments.
	APIKey string

	// Model names the cross-encoder served by the endpoint. TEI serves a
	// single model per instance, so this is informational.
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Reranker scores query/document pairs with a cross-encoder model.
type Reranker struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// rerankRequest is the TEI /rerank request format.
type rerankRequest struct {
	Query     string   `json:"query"`
	Texts     []string `json:"texts"`
	RawScores bool     `json:"raw_scores"`
}

// rerankResult is one entry of the TEI /rerank response. The server
// returns entries sorted by score, with Index pointing back into the
// request texts.
type rerankResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// apiError is the TEI error envelope.
type apiError struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

// NewReranker creates a new TEI reranker client.
func NewReranker(cfg Config) (*Reranker, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Reranker{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Score returns one relevance score per text, in input order.
func (r *Reranker) Score(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := rerankRequest{
		Query: query,
		Texts: texts,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/rerank",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope apiError
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			return nil, fmt.Errorf("tei error: %s", envelope.Error)
		}
		return nil, fmt.Errorf("tei error (status %d): %s", resp.StatusCode, string(body))
	}

	var results []rerankResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Reorder by request index: callers own ranking policy.
	scores := make([]float64, len(texts))
	for _, res := range results {
		if res.Index < 0 || res.Index >= len(scores) {
			return nil, fmt.Errorf("tei: result index %d out of range", res.Index)
		}
		scores[res.Index] = res.Score
	}
	return scores, nil
}

// ModelName returns the name of the reranking model being used.
func (r *Reranker) ModelName() string {
	return r.model
}

// Ping validates the server is reachable via its /health endpoint.
func (r *Reranker) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("tei: failed to create ping request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("tei: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tei: server returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (r *Reranker) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
