package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

var (
	tripsID         int
	tripsCountry    string
	tripsCity       string
	tripsStartDate  string
	tripsDays       int
	tripsCost       float64
	tripsActivities []string
	tripsJSON       bool
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Look up trips in the catalog",
	Long: `Filters the trip catalog by exact field match.

All filters combine with AND. --id selects a trip by its position in the
catalog and bypasses every other filter.`,
	RunE: runTrips,
}

func init() {
	tripsCmd.Flags().IntVar(&tripsID, "id", -1, "trip position in the catalog (bypasses other filters)")
	tripsCmd.Flags().StringVar(&tripsCountry, "country", "", "destination country")
	tripsCmd.Flags().StringVar(&tripsCity, "city", "", "destination city")
	tripsCmd.Flags().StringVar(&tripsStartDate, "start-date", "", "start date (YYYY-MM-DD)")
	tripsCmd.Flags().IntVar(&tripsDays, "days", 0, "trip duration in days")
	tripsCmd.Flags().Float64Var(&tripsCost, "cost", 0, "total cost in EUR")
	tripsCmd.Flags().StringSliceVar(&tripsActivities, "activity", nil, "required extra activity (repeatable)")
	tripsCmd.Flags().BoolVar(&tripsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(tripsCmd)
}

func runTrips(cmd *cobra.Command, _ []string) error {
	if tripService == nil {
		return errors.New("trip service not configured: catalog file missing")
	}

	query := domain.TripQuery{
		Country:    tripsCountry,
		City:       tripsCity,
		StartDate:  tripsStartDate,
		Activities: tripsActivities,
	}
	if cmd.Flags().Changed("id") {
		id := tripsID
		query.TripID = &id
	}
	if cmd.Flags().Changed("days") {
		days := tripsDays
		query.Days = &days
	}
	if cmd.Flags().Changed("cost") {
		cost := tripsCost
		query.CostEUR = &cost
	}

	trips, err := tripService.FetchTripDetails(context.Background(), query)
	if err != nil {
		return fmt.Errorf("trip lookup failed: %w", err)
	}

	if tripsJSON {
		return outputTripsJSON(cmd, trips)
	}

	return outputTripsTable(cmd, trips)
}

func outputTripsJSON(cmd *cobra.Command, trips []domain.Trip) error {
	data, err := json.MarshalIndent(trips, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal trips: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputTripsTable(cmd *cobra.Command, trips []domain.Trip) error {
	cmd.Printf("Found %d trip(s):\n\n", len(trips))
	for i := range trips {
		t := &trips[i]
		cmd.Printf("  %s, %s | %s, %d days, %.0f EUR\n", t.City, t.Country, t.StartDate, t.Days, t.CostEUR)
		if len(t.Activities) > 0 {
			cmd.Printf("      Activities: %s\n", strings.Join(t.Activities, ", "))
		}
		if t.Details != "" {
			cmd.Printf("      %s\n", t.Details)
		}
		cmd.Println()
	}
	return nil
}
