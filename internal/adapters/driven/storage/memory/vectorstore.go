package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
)

// Ensure VectorCollection implements the interface.
var _ driven.VectorCollection = (*VectorCollection)(nil)

// VectorCollection is an in-memory implementation of driven.VectorCollection.
type VectorCollection struct {
	mu   sync.RWMutex
	name domain.Collection
	docs map[string]entry
}

type entry struct {
	doc       domain.Document
	embedding []float32
}

// NewVectorCollection creates a new in-memory vector collection.
func NewVectorCollection(name domain.Collection) *VectorCollection {
	return &VectorCollection{
		name: name,
		docs: make(map[string]entry),
	}
}

// Name returns the collection this store backs.
func (c *VectorCollection) Name() domain.Collection {
	return c.name
}

// Upsert stores a document and its embedding.
func (c *VectorCollection) Upsert(_ context.Context, doc domain.Document, embedding []float32) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[doc.ID] = entry{doc: doc, embedding: embedding}
	return nil
}

// Query returns the n nearest documents by ascending cosine distance.
func (c *VectorCollection) Query(_ context.Context, embedding []float32, n int) ([]domain.Candidate, error) {
	if n <= 0 {
		return nil, nil
	}

	c.mu.RLock()
	candidates := make([]domain.Candidate, 0, len(c.docs))
	for _, e := range c.docs {
		candidates = append(candidates, domain.Candidate{
			Document: e.doc,
			Distance: cosineDistance(embedding, e.embedding),
		})
	}
	c.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		// Map iteration order is random; break score ties by id so
		// results are deterministic.
		return candidates[i].Document.ID < candidates[j].Document.ID
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// Count returns the number of documents in the collection.
func (c *VectorCollection) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs), nil
}

// Close releases resources.
func (c *VectorCollection) Close() error {
	return nil
}

// cosineDistance returns 1 minus the cosine similarity of a and b.
// Mismatched or zero-magnitude vectors score the maximum distance so
// they sort last instead of poisoning results.
func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 2
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
