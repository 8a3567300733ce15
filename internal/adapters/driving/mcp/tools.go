package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the travel question to ask the agency bot"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string `json:"answer"`
	Rejected bool   `json:"rejected"`
	Context  string `json:"context,omitempty"`
}

// TripDetailsInput is the input schema for the fetch_trip_details tool.
// All filters are optional, but at least one must be provided. TripID
// selects by catalog position and bypasses every other filter.
type TripDetailsInput struct {
	TripID     *int     `json:"trip_id,omitempty" jsonschema:"zero-based position of the trip in the catalog"`
	Country    string   `json:"country,omitempty" jsonschema:"destination country, exact match"`
	City       string   `json:"city,omitempty" jsonschema:"destination city, exact match"`
	StartDate  string   `json:"start_date,omitempty" jsonschema:"trip start date, YYYY-MM-DD"`
	Days       *int     `json:"days,omitempty" jsonschema:"trip duration in days"`
	CostEUR    *float64 `json:"cost,omitempty" jsonschema:"total trip cost in EUR"`
	Activities []string `json:"activities,omitempty" jsonschema:"extra activities the trip must include"`
	Details    string   `json:"details,omitempty" jsonschema:"trip description, exact match"`
}

// TripDetailsOutput is the output schema for the fetch_trip_details tool.
type TripDetailsOutput struct {
	Trips []domain.Trip `json:"trips"`
	Count int           `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask the travel agency bot a question grounded in the FAQ and trip catalog",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_trip_details",
		Description: "Look up trips in the catalog by exact field match or by position",
	}, s.handleFetchTripDetails)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.Bot.ProcessUserInput(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:   result.Answer,
		Rejected: result.Rejected,
		Context:  result.Context,
	}, nil
}

// handleFetchTripDetails handles the fetch_trip_details tool invocation.
func (s *Server) handleFetchTripDetails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TripDetailsInput,
) (*mcp.CallToolResult, TripDetailsOutput, error) {
	query := domain.TripQuery{
		TripID:     input.TripID,
		Country:    input.Country,
		City:       input.City,
		StartDate:  input.StartDate,
		Days:       input.Days,
		CostEUR:    input.CostEUR,
		Activities: input.Activities,
		Details:    input.Details,
	}

	trips, err := s.ports.Trips.FetchTripDetails(ctx, query)
	if err != nil {
		return nil, TripDetailsOutput{}, err
	}

	return nil, TripDetailsOutput{
		Trips: trips,
		Count: len(trips),
	}, nil
}
