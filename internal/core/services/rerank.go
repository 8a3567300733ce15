package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
	"github.com/nomad-labs/nomad-cli/internal/logger"
)

// Default reranking parameters. MinScore is an uncalibrated cutoff on the
// raw cross-encoder score; treat it as a tunable, not a probability.
const (
	DefaultTopK     = 3
	DefaultMinScore = 0.5
)

// Reranker runs the second, more precise relevance pass over retrieved
// candidates using a pairwise cross-encoder scorer.
type Reranker struct {
	scorer driven.RelevanceScorer
}

// NewReranker creates a reranker over the given scorer.
func NewReranker(scorer driven.RelevanceScorer) *Reranker {
	return &Reranker{scorer: scorer}
}

// Rerank scores every candidate against the query and returns documents
// ordered by descending relevance.
//
// The policy is truncate-then-filter: the list is first cut to the topK
// highest-scoring documents, and only then are scores below minScore
// dropped. A weak candidate inside the topK can survive if it clears
// minScore; a strong candidate outside the topK never reaches the filter.
// The order of these two steps must not change.
func (r *Reranker) Rerank(
	ctx context.Context, query string, candidates []domain.Candidate, topK int, minScore float64,
) ([]domain.RankedDocument, error) {
	if r.scorer == nil {
		return nil, domain.ErrRerankUnavailable
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Document.Text
	}

	scores, err := r.scorer.Score(ctx, query, texts)
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("score candidates: got %d scores for %d texts", len(scores), len(candidates))
	}

	ranked := make([]domain.RankedDocument, len(candidates))
	for i := range candidates {
		ranked[i] = domain.RankedDocument{
			Document: candidates[i].Document,
			Score:    scores[i],
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	kept := ranked[:0]
	for _, doc := range ranked {
		if doc.Score >= minScore {
			kept = append(kept, doc)
		} else {
			logger.Debug("Dropped %s (score %.3f below %.2f)", doc.Document.ID, doc.Score, minScore)
		}
	}

	logger.Debug("Rerank kept %d of %d candidates", len(kept), len(candidates))
	return kept, nil
}
