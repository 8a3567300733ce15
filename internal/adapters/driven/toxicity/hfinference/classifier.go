// Package hfinference provides a toxicity classifier backed by the
// Hugging Face Inference API text-classification task.
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.ToxicityClassifier = (*Classifier)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "textdetox/xlmr-large-toxicity-classifier"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Hugging Face classifier.
type Config struct {
	// APIKey is the Hugging Face API token (required).
	APIKey string

	// BaseURL is the inference API base URL (default: the hosted API).
	// Can be changed for a self-hosted inference endpoint.
	BaseURL string

	// Model is the classification model to use.
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Classifier scores user input for toxicity. Model and transport
// failures surface as unavailable verdicts, not errors: a broken safety
// model must not take the bot down.
type Classifier struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// classifyRequest is the Inference API request format.
type classifyRequest struct {
	Inputs  []string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// classifyLabel is one label/score pair in the response.
type classifyLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// apiError is the Inference API error envelope.
type apiError struct {
	Error string `json:"error"`
}

// NewClassifier creates a new Hugging Face toxicity classifier.
func NewClassifier(cfg Config) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("hfinference: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Classifier{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Classify returns a toxicity verdict for a single text.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Verdict, error) {
	verdicts, err := c.ClassifyBatch(ctx, []string{text})
	if err != nil {
		return domain.Verdict{}, err
	}
	if len(verdicts) == 0 {
		return domain.Verdict{Label: domain.LabelUnavailable}, nil
	}
	return verdicts[0], nil
}

// ClassifyBatch classifies multiple texts in one request. The result
// slice matches the input order. The batch is atomic: any model failure
// makes every verdict unavailable.
func (c *Classifier) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Verdict, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results, err := c.infer(ctx, texts)
	if err != nil {
		// Cancellation belongs to the caller; everything else fails open.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return unavailableBatch(len(texts)), nil
	}
	if len(results) != len(texts) {
		return unavailableBatch(len(texts)), nil
	}

	verdicts := make([]domain.Verdict, len(results))
	for i, labels := range results {
		verdicts[i] = topVerdict(labels)
	}
	return verdicts, nil
}

// infer performs one Inference API call. The API returns one label list
// per input, each list holding every class with its probability.
func (c *Classifier) infer(ctx context.Context, texts []string) ([][]classifyLabel, error) {
	reqBody := classifyRequest{Inputs: texts}
	reqBody.Options.WaitForModel = true

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/"+c.model,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
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
			return nil, fmt.Errorf("hfinference error: %s", envelope.Error)
		}
		return nil, fmt.Errorf("hfinference error (status %d): %s", resp.StatusCode, string(body))
	}

	var results [][]classifyLabel
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return results, nil
}

// topVerdict picks the highest-scoring class and maps it onto a verdict.
func topVerdict(labels []classifyLabel) domain.Verdict {
	if len(labels) == 0 {
		return domain.Verdict{Label: domain.LabelUnavailable}
	}

	top := labels[0]
	for _, l := range labels[1:] {
		if l.Score > top.Score {
			top = l
		}
	}

	verdict := domain.Verdict{Score: top.Score}
	switch top.Label {
	case "toxic", "LABEL_1":
		verdict.Label = domain.LabelToxic
	case "neutral", "non-toxic", "LABEL_0":
		verdict.Label = domain.LabelNonToxic
	default:
		verdict.Label = domain.LabelUnavailable
	}
	return verdict
}

func unavailableBatch(n int) []domain.Verdict {
	verdicts := make([]domain.Verdict, n)
	for i := range verdicts {
		verdicts[i] = domain.Verdict{Label: domain.LabelUnavailable}
	}
	return verdicts
}

// ModelName returns the name of the classification model being used.
func (c *Classifier) ModelName() string {
	return c.model
}

// Close releases resources.
func (c *Classifier) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
