package services

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
	"github.com/nomad-labs/nomad-cli/internal/logger"
)

// Ensure TripLookup implements the interface.
var _ driving.TripService = (*TripLookup)(nil)

// TripLookup answers exact-match queries over the trip catalog. The
// catalog is loaded once at construction and never mutated, so lookups
// need no locking.
type TripLookup struct {
	trips []domain.Trip
}

// NewTripLookup creates a lookup over the given catalog.
func NewTripLookup(trips []domain.Trip) *TripLookup {
	return &TripLookup{trips: trips}
}

// FetchTripDetails filters the catalog by the supplied criteria.
//
// A TripID is a positional index into the catalog and bypasses every
// other filter. Supplying no criteria at all, or an out-of-range id,
// yields an error result, never a panic.
func (s *TripLookup) FetchTripDetails(_ context.Context, query domain.TripQuery) ([]domain.Trip, error) {
	if query.Empty() {
		return nil, domain.ErrNoSearchCriteria
	}

	if query.TripID != nil {
		id := *query.TripID
		if id < 0 || id >= len(s.trips) {
			return nil, &domain.TripNotFoundError{ID: id}
		}
		return []domain.Trip{s.trips[id]}, nil
	}

	var results []domain.Trip
	for _, trip := range s.trips {
		if query.Matches(trip) {
			results = append(results, trip)
		}
	}
	logger.Debug("Trip lookup matched %d of %d records", len(results), len(s.trips))

	if len(results) == 0 {
		return nil, domain.ErrNoTripsMatched
	}
	return results, nil
}

// Count returns the catalog size.
func (s *TripLookup) Count() int {
	return len(s.trips)
}
