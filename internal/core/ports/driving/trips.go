package driving

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// TripService answers structured catalog lookups by exact field match.
// It is exposed to LLM clients as the fetch_trip_details tool.
type TripService interface {
	// FetchTripDetails filters the catalog by the supplied criteria.
	// A TripID bypasses all other filters and selects by position.
	// Lookup misses return domain errors (never panics):
	// domain.ErrNoSearchCriteria, domain.ErrNoTripsMatched, or a
	// *domain.TripNotFoundError.
	FetchTripDetails(ctx context.Context, query domain.TripQuery) ([]domain.Trip, error)

	// Count returns the catalog size.
	Count() int
}
