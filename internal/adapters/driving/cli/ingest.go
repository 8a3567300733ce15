package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed and index the FAQ and trip catalog",
	Long: `Loads faq.json and trips_data.json from the catalog directory,
validates every record, embeds the valid ones, and stores them in the
FAQ and trip vector collections.

Re-running ingestion overwrites existing documents by id, so it is safe
to run after editing the catalog files.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured: set openai.api_key with 'nomad config set'")
	}

	cmd.Println("Ingesting catalog...")

	faqStats, tripStats, err := ingestService.IngestAll(context.Background())
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("FAQ:   %d ingested, %d quarantined\n", faqStats.Ingested, faqStats.Quarantined)
	cmd.Printf("Trips: %d ingested, %d quarantined\n", tripStats.Ingested, tripStats.Quarantined)

	if faqStats.Quarantined+tripStats.Quarantined > 0 {
		cmd.Println("Quarantined records were skipped; check the catalog files for missing fields.")
	}

	return nil
}
