package mcp

import (
	"context"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// mockBotService is a mock implementation of driving.BotService.
type mockBotService struct {
	result domain.TurnResult
	err    error
}

func (m *mockBotService) ProcessUserInput(_ context.Context, _ string) (domain.TurnResult, error) {
	return m.result, m.err
}

// mockTripService is a mock implementation of driving.TripService.
type mockTripService struct {
	trips []domain.Trip
	query domain.TripQuery
	err   error
}

func (m *mockTripService) FetchTripDetails(_ context.Context, query domain.TripQuery) ([]domain.Trip, error) {
	m.query = query
	return m.trips, m.err
}

func (m *mockTripService) Count() int {
	return len(m.trips)
}
