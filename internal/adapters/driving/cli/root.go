// Package cli provides the cobra command-line interface for Nomad.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nomad-labs/nomad-cli/internal/adapters/driven/catalog/jsonfile"
	configfile "github.com/nomad-labs/nomad-cli/internal/adapters/driven/config/file"
	embeddingopenai "github.com/nomad-labs/nomad-cli/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/nomad-labs/nomad-cli/internal/adapters/driven/llm/openai"
	"github.com/nomad-labs/nomad-cli/internal/adapters/driven/rerank/tei"
	"github.com/nomad-labs/nomad-cli/internal/adapters/driven/storage/sqlite"
	"github.com/nomad-labs/nomad-cli/internal/adapters/driven/toxicity/hfinference"
	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driving"
	"github.com/nomad-labs/nomad-cli/internal/core/services"
	"github.com/nomad-labs/nomad-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

// Persistent flags.
var (
	verboseFlag bool
	configDir   string
	dataDir     string
	catalogDir  string
)

// Services wired by initServices. Commands check for nil so the test
// suite can swap in mocks.
var (
	configStore    driven.ConfigStore
	botService     driving.BotService
	tripService    driving.TripService
	historyService driving.HistoryService
	ingestService  driving.IngestService

	store         *sqlite.Store
	llmClient     driven.LLMService
	faqCollection driven.VectorCollection
)

var rootCmd = &cobra.Command{
	Use:   "nomad",
	Short: "Retrieval-grounded travel agency assistant",
	Long: `Nomad is a travel agency assistant grounded in the agency's FAQ
knowledge base and trip catalog.

Questions run through a moderation gate, dual-collection vector retrieval,
cross-encoder reranking, and answer generation. Use 'nomad chat' for the
interactive terminal UI or 'nomad ask' for one-shot questions.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose pipeline logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.nomad)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.nomad/data)")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "data", "directory holding faq.json and trips_data.json")
}

// Execute wires the services and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	defer shutdown()

	return rootCmd.Execute()
}

// initServices builds the adapter stack from configuration. Services
// whose providers are not configured stay nil; each command reports
// what it is missing.
func initServices() error {
	var err error
	configStore, err = configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	faq := store.Collection(domain.CollectionFAQ)
	trips := store.Collection(domain.CollectionTrips)
	faqCollection = faq

	source := jsonfile.NewLoader(catalogDir)

	// Trip lookup works from the raw catalog file, no providers needed.
	if catalog, err := source.LoadTrips(context.Background()); err == nil {
		tripService = services.NewTripLookup(catalog)
	} else {
		logger.Warn("trip catalog unavailable: %v", err)
	}

	openaiKey := secret("OPENAI_API_KEY", "openai.api_key")
	if openaiKey == "" {
		logger.Info("openai.api_key not set; run 'nomad config set openai.api_key'")
		historyService = services.NewHistory(store.SessionStore(), nil)
		return nil
	}

	embedder, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
		APIKey: openaiKey,
		Model:  configStore.GetString("openai.embedding_model"),
	})
	if err != nil {
		return fmt.Errorf("configuring embedding service: %w", err)
	}

	llmClient, err = llmopenai.NewLLMService(llmopenai.LLMConfig{
		APIKey: openaiKey,
		Model:  configStore.GetString("openai.model"),
	})
	if err != nil {
		return fmt.Errorf("configuring LLM service: %w", err)
	}

	// The gate is optional: without a Hugging Face token the engine
	// fails open and answers without moderation.
	var gate driven.ToxicityClassifier
	if hfKey := secret("HF_API_TOKEN", "huggingface.api_key"); hfKey != "" {
		gate, err = hfinference.NewClassifier(hfinference.Config{
			APIKey: hfKey,
			Model:  configStore.GetString("huggingface.toxicity_model"),
		})
		if err != nil {
			return fmt.Errorf("configuring toxicity classifier: %w", err)
		}
	} else {
		logger.Warn("huggingface.api_key not set; moderation gate disabled")
	}

	scorer, err := tei.NewReranker(tei.Config{
		BaseURL: configStore.GetString("rerank.base_url"),
		APIKey:  configStore.GetString("rerank.api_key"),
		Model:   configStore.GetString("rerank.model"),
	})
	if err != nil {
		return fmt.Errorf("configuring reranker: %w", err)
	}

	opts := services.EngineOptions{
		TopK:              configStore.GetInt("rerank.top_k"),
		ToxicityThreshold: configStore.GetFloat("toxicity.threshold"),
	}
	// An explicitly configured cutoff is honoured even at zero; absent,
	// the engine default applies.
	if _, ok := configStore.Get("rerank.min_score"); ok {
		minScore := configStore.GetFloat("rerank.min_score")
		opts.MinScore = &minScore
	}

	botService = services.NewEngine(gate, services.NewRetriever(embedder, faq, trips), services.NewReranker(scorer), llmClient, opts)
	ingestService = services.NewIngestor(source, embedder, faq, trips)
	historyService = services.NewHistory(store.SessionStore(), llmClient)

	return nil
}

// secret resolves an API credential. The environment variable takes
// precedence over the stored config value.
func secret(envVar, key string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return configStore.GetString(key)
}

// ensureIngested populates empty collections before a serving command
// runs. A populated store is left alone; 'nomad ingest' re-runs the
// idempotent upsert explicitly.
func ensureIngested(ctx context.Context) error {
	if ingestService == nil || faqCollection == nil {
		return nil
	}

	n, err := faqCollection.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking collections: %w", err)
	}
	if n > 0 {
		return nil
	}

	logger.Info("Collections empty, ingesting catalog")
	if _, _, err := ingestService.IngestAll(ctx); err != nil {
		return fmt.Errorf("ingesting catalog: %w", err)
	}
	return nil
}

// shutdown releases long-lived resources.
func shutdown() {
	if store != nil {
		store.Close() //nolint:errcheck
	}
}
