package driven

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// VectorCollection is a named, persistent set of documents plus their
// embeddings, addressable by similarity query.
//
// Collections are appended to only during ingestion and are read-only
// during query serving, so implementations need no locking discipline
// beyond "ingestion completes before serving begins".
type VectorCollection interface {
	// Name returns the collection this store backs.
	Name() domain.Collection

	// Upsert stores a document and its embedding. Re-ingesting the same
	// id overwrites, never duplicates.
	Upsert(ctx context.Context, doc domain.Document, embedding []float32) error

	// Query returns the n nearest documents to the query embedding,
	// ordered by ascending cosine distance (most similar first).
	Query(ctx context.Context, embedding []float32, n int) ([]domain.Candidate, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
