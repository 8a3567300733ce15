package cli

import (
	"context"
	"errors"
	"time"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
)

// mockBotService returns a canned answer.
type mockBotService struct {
	result domain.TurnResult
	err    error
}

func (m *mockBotService) ProcessUserInput(_ context.Context, _ string) (domain.TurnResult, error) {
	return m.result, m.err
}

// mockBotServiceError always fails.
type mockBotServiceError struct{}

func (m *mockBotServiceError) ProcessUserInput(_ context.Context, _ string) (domain.TurnResult, error) {
	return domain.TurnResult{}, errors.New("pipeline down")
}

// mockTripService serves a fixed catalog and records the last query.
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

// mockHistoryService serves fixed sessions.
type mockHistoryService struct {
	sessions []domain.Session
	err      error
}

func (m *mockHistoryService) NewSession(firstMessage string) *domain.Session {
	return &domain.Session{ConversationID: "test", Header: firstMessage, CreatedAt: time.Now()}
}

func (m *mockHistoryService) RecordTurn(_ context.Context, _ *domain.Session, _, _ string) error {
	return m.err
}

func (m *mockHistoryService) Sessions(_ context.Context) ([]domain.Session, error) {
	return m.sessions, m.err
}

// mockIngestService reports fixed stats.
type mockIngestService struct {
	faq   driving.IngestStats
	trips driving.IngestStats
	err   error
}

func (m *mockIngestService) IngestAll(_ context.Context) (driving.IngestStats, driving.IngestStats, error) {
	return m.faq, m.trips, m.err
}

// setupTestServices installs mock services and returns a cleanup func.
func setupTestServices() func() {
	oldBot := botService
	oldTrips := tripService
	oldHistory := historyService
	oldIngest := ingestService

	botService = &mockBotService{
		result: domain.TurnResult{Answer: "Rome is lovely in June."},
	}
	tripService = &mockTripService{
		trips: []domain.Trip{{
			Country: "Italy", City: "Rome", StartDate: "2025-06-01",
			Days: 7, CostEUR: 1250,
			Activities: []string{"Colosseum guided tour"},
			Details:    "A week in the eternal city.",
		}},
	}
	historyService = &mockHistoryService{
		sessions: []domain.Session{{
			ConversationID: "11111111-1111-1111-1111-111111111111",
			Header:         "Where should I go on holiday t...",
			CreatedAt:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		}},
	}
	ingestService = &mockIngestService{
		faq:   driving.IngestStats{Ingested: 10},
		trips: driving.IngestStats{Ingested: 8, Quarantined: 1},
	}

	return func() {
		botService = oldBot
		tripService = oldTrips
		historyService = oldHistory
		ingestService = oldIngest
	}
}
