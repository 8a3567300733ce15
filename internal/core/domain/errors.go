package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a query with no text after trimming.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNoSearchCriteria indicates a catalog lookup with no criteria at
	// all.
	ErrNoSearchCriteria = errors.New("no search criteria provided")

	// ErrNoTripsMatched indicates a catalog lookup that matched nothing.
	ErrNoTripsMatched = errors.New("No trips found matching the criteria")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or not reachable. Retrieval cannot run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRerankUnavailable indicates the relevance scorer is not
	// configured. Reranking fails the turn outright; there is no
	// partial-answer fallback.
	ErrRerankUnavailable = errors.New("relevance scorer unavailable")

	// ErrGenerationUnavailable indicates the LLM service is not
	// configured. Generation fails the turn outright.
	ErrGenerationUnavailable = errors.New("LLM service unavailable")

	// ErrCollectionUnavailable indicates a vector collection is not
	// configured or failed to open.
	ErrCollectionUnavailable = errors.New("vector collection unavailable")
)
