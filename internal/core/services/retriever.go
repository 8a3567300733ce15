package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
	"github.com/nomad-labs/nomad-cli/internal/logger"
)

// Retriever fans similarity queries out across the FAQ and trip
// collections. The two queries are read-only and address disjoint
// collections, so they run sequentially without loss of meaning.
type Retriever struct {
	embedder driven.EmbeddingService
	faq      driven.VectorCollection
	trips    driven.VectorCollection
}

// NewRetriever creates a retriever over the two collections.
func NewRetriever(
	embedder driven.EmbeddingService,
	faq driven.VectorCollection,
	trips driven.VectorCollection,
) *Retriever {
	return &Retriever{
		embedder: embedder,
		faq:      faq,
		trips:    trips,
	}
}

// Query returns at most n candidates from one collection, ordered by
// ascending distance (most similar first).
func (r *Retriever) Query(
	ctx context.Context, collection domain.Collection, text string, n int,
) ([]domain.Candidate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyQuery
	}
	col, err := r.collection(collection)
	if err != nil {
		return nil, err
	}
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	embedding, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := col.Query(ctx, embedding, n)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	logger.Debug("Collection %s: %d candidates", collection, len(candidates))
	return candidates, nil
}

// QueryAll queries both collections with the same text and returns the
// per-collection results. The query embedding is computed once.
func (r *Retriever) QueryAll(ctx context.Context, text string, n int) (domain.RetrievalSet, error) {
	if strings.TrimSpace(text) == "" {
		return domain.RetrievalSet{}, domain.ErrEmptyQuery
	}
	if r.embedder == nil {
		return domain.RetrievalSet{}, domain.ErrEmbeddingUnavailable
	}
	if r.faq == nil || r.trips == nil {
		return domain.RetrievalSet{}, domain.ErrCollectionUnavailable
	}

	embedding, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return domain.RetrievalSet{}, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	faqHits, err := r.faq.Query(ctx, embedding, n)
	if err != nil {
		return domain.RetrievalSet{}, fmt.Errorf("query %s: %w", r.faq.Name(), err)
	}

	tripHits, err := r.trips.Query(ctx, embedding, n)
	if err != nil {
		return domain.RetrievalSet{}, fmt.Errorf("query %s: %w", r.trips.Name(), err)
	}

	logger.Debug("Retrieved %d FAQ + %d trip candidates", len(faqHits), len(tripHits))
	return domain.RetrievalSet{FAQ: faqHits, Trips: tripHits}, nil
}

func (r *Retriever) collection(name domain.Collection) (driven.VectorCollection, error) {
	switch name {
	case domain.CollectionFAQ:
		if r.faq == nil {
			return nil, domain.ErrCollectionUnavailable
		}
		return r.faq, nil
	case domain.CollectionTrips:
		if r.trips == nil {
			return nil, domain.ErrCollectionUnavailable
		}
		return r.trips, nil
	default:
		return nil, fmt.Errorf("%w: unknown collection %q", domain.ErrInvalidInput, name)
	}
}
