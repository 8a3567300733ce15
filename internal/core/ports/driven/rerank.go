package driven

import "context"

// RelevanceScorer scores query/document pairs with a cross-encoder style
// pairwise model. Unlike an embedding similarity, the scorer sees the
// query and the candidate text together, which makes it the more precise
// second pass of retrieval.
type RelevanceScorer interface {
	// Score returns one relevance score per text, in input order. The
	// scores are raw model outputs with no learned calibration.
	Score(ctx context.Context, query string, texts []string) ([]float64, error)

	// ModelName returns the name of the reranking model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
