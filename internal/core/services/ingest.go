package services

import (
	"context"
	"fmt"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
	"github.com/nomad-labs/nomad-cli/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driving.IngestService = (*Ingestor)(nil)

// embeddingBatchSize bounds embedding requests; providers often limit
// batch sizes.
const embeddingBatchSize = 10

// Ingestor populates the vector collections from the catalog source.
// Malformed records are quarantined (skipped and logged), never allowed
// to abort the run. Upserts are idempotent per document id.
type Ingestor struct {
	source   driven.CatalogSource
	embedder driven.EmbeddingService
	faq      driven.VectorCollection
	trips    driven.VectorCollection
}

// NewIngestor creates an ingestor over the catalog source and collections.
func NewIngestor(
	source driven.CatalogSource,
	embedder driven.EmbeddingService,
	faq driven.VectorCollection,
	trips driven.VectorCollection,
) *Ingestor {
	return &Ingestor{
		source:   source,
		embedder: embedder,
		faq:      faq,
		trips:    trips,
	}
}

// IngestAll loads, validates, embeds and stores both collections.
func (s *Ingestor) IngestAll(ctx context.Context) (driving.IngestStats, driving.IngestStats, error) {
	logger.Section("Ingestion")

	faqStats, err := s.ingestFAQ(ctx)
	if err != nil {
		return faqStats, driving.IngestStats{}, fmt.Errorf("ingest FAQ: %w", err)
	}

	tripStats, err := s.ingestTrips(ctx)
	if err != nil {
		return faqStats, tripStats, fmt.Errorf("ingest trips: %w", err)
	}

	logger.Info("Ingested %d FAQ and %d trip documents (%d quarantined)",
		faqStats.Ingested, tripStats.Ingested, faqStats.Quarantined+tripStats.Quarantined)
	return faqStats, tripStats, nil
}

func (s *Ingestor) ingestFAQ(ctx context.Context) (driving.IngestStats, error) {
	var stats driving.IngestStats
	entries, err := s.source.LoadFAQ(ctx)
	if err != nil {
		return stats, fmt.Errorf("load: %w", err)
	}

	var docs []domain.Document
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			logger.Warn("Quarantined FAQ record %d: %v", i, err)
			stats.Quarantined++
			continue
		}
		e := entry
		docs = append(docs, domain.Document{
			ID:         fmt.Sprintf("faq_%d", i),
			Collection: domain.CollectionFAQ,
			Text:       entry.DocumentText(),
			FAQ:        &e,
		})
	}

	if err := s.store(ctx, s.faq, docs); err != nil {
		return stats, err
	}
	stats.Ingested = len(docs)
	return stats, nil
}

func (s *Ingestor) ingestTrips(ctx context.Context) (driving.IngestStats, error) {
	var stats driving.IngestStats
	trips, err := s.source.LoadTrips(ctx)
	if err != nil {
		return stats, fmt.Errorf("load: %w", err)
	}

	var docs []domain.Document
	for i, trip := range trips {
		if err := trip.Validate(); err != nil {
			logger.Warn("Quarantined trip record %d: %v", i, err)
			stats.Quarantined++
			continue
		}
		t := trip
		docs = append(docs, domain.Document{
			ID:         fmt.Sprintf("trip_%d", i),
			Collection: domain.CollectionTrips,
			Text:       trip.DocumentText(),
			Trip:       &t,
		})
	}

	if err := s.store(ctx, s.trips, docs); err != nil {
		return stats, err
	}
	stats.Ingested = len(docs)
	return stats, nil
}

// store embeds the documents in bounded batches and upserts them into the
// collection.
func (s *Ingestor) store(ctx context.Context, col driven.VectorCollection, docs []domain.Document) error {
	if col == nil {
		return domain.ErrCollectionUnavailable
	}
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	var embeddings [][]float32
	for start := 0; start < len(texts); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return fmt.Errorf("embed batch at %d: %w", start, err)
		}
		embeddings = append(embeddings, batch...)
	}
	if len(embeddings) != len(docs) {
		return fmt.Errorf("embedding count mismatch: %d embeddings for %d documents", len(embeddings), len(docs))
	}

	for i, doc := range docs {
		if err := col.Upsert(ctx, doc, embeddings[i]); err != nil {
			return fmt.Errorf("upsert %s: %w", doc.ID, err)
		}
	}
	return nil
}
