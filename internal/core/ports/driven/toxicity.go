package driven

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// ToxicityClassifier classifies free text as toxic or non-toxic with a
// confidence score.
//
// The classifier fails open: when the underlying model cannot be loaded or
// an inference call fails, implementations return a verdict with
// domain.LabelUnavailable rather than an error. The error return is
// reserved for caller mistakes (empty input) and context cancellation.
// Moderation being down must never crash the pipeline.
type ToxicityClassifier interface {
	// Classify runs a single inference call for the given text. No
	// retries are performed.
	Classify(ctx context.Context, text string) (domain.Verdict, error)

	// ClassifyBatch classifies an ordered sequence of texts and returns a
	// same-length ordered sequence of verdicts. The batch is atomic: if
	// the underlying model errors, every verdict in the batch is
	// unavailable.
	ClassifyBatch(ctx context.Context, texts []string) ([]domain.Verdict, error)

	// ModelName returns the name of the classification model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
