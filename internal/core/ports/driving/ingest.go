package driving

import "context"

// IngestStats summarises one ingestion run.
type IngestStats struct {
	// Ingested is the number of documents embedded and stored.
	Ingested int

	// Quarantined is the number of malformed records skipped.
	Quarantined int
}

// IngestService populates the vector collections from the catalog source.
// Ingestion is a one-time startup phase; collections are read-only during
// query serving.
type IngestService interface {
	// IngestAll loads, validates, embeds and stores both collections.
	IngestAll(ctx context.Context) (faq IngestStats, trips IngestStats, err error)
}
