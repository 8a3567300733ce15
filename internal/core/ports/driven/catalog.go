package driven

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// CatalogSource loads the static ingestion source files: the FAQ knowledge
// base and the trip catalog. Records are loaded once at startup; the
// ingestion service validates them and quarantines malformed entries.
type CatalogSource interface {
	// LoadFAQ reads all FAQ entries from the source.
	LoadFAQ(ctx context.Context) ([]domain.FAQEntry, error)

	// LoadTrips reads all trip records from the source.
	LoadTrips(ctx context.Context) ([]domain.Trip, error)
}
