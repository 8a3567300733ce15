package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

var (
	askJSON        bool
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the travel assistant a one-shot question",
	Long: `Runs a single question through the full answer pipeline: moderation
gate, FAQ and trip retrieval, reranking, and answer generation.

The answer is grounded in the agency's FAQ knowledge base and trip catalog.
One-shot questions are not recorded in the chat history.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved context alongside the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if botService == nil {
		return errors.New("bot service not configured: set openai.api_key with 'nomad config set'")
	}

	if err := ensureIngested(cmd.Context()); err != nil {
		return err
	}

	result, err := botService.ProcessUserInput(context.Background(), question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, result)
	}

	return outputAskText(cmd, result)
}

func outputAskJSON(cmd *cobra.Command, result domain.TurnResult) error {
	payload := struct {
		Answer   string `json:"answer"`
		Rejected bool   `json:"rejected"`
		Context  string `json:"context,omitempty"`
	}{
		Answer:   result.Answer,
		Rejected: result.Rejected,
	}
	if askShowContext {
		payload.Context = result.Context
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, result domain.TurnResult) error {
	if askShowContext && result.Context != "" {
		cmd.Println("Context:")
		cmd.Println(result.Context)
		cmd.Println()
	}
	cmd.Println(result.Answer)
	return nil
}
