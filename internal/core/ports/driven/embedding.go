package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorCollection which stores and searches
// vectors. EmbeddingService generates vectors; VectorCollection stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-ada-002, text-embedding-3-small)
//   - Compatible local inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1536).
	// This is determined by the model and must match the collections.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
