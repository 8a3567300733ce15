package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// secretKeys are read without echo and shown masked.
var secretKeys = map[string]bool{
	"openai.api_key":      true,
	"huggingface.api_key": true,
	"rerank.api_key":      true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values stored in the TOML config file.

Well-known keys:
  openai.api_key             OpenAI API key (required)
  openai.model               chat model (default gpt-4o-mini)
  openai.embedding_model     embedding model (default text-embedding-ada-002)
  huggingface.api_key        Hugging Face token for the moderation gate
  huggingface.toxicity_model toxicity classification model
  rerank.base_url            reranker server address
  rerank.top_k               candidates kept after reranking
  rerank.min_score           relevance score cut-off
  toxicity.threshold         toxic confidence needed to reject input`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it immediately.

API keys may be passed as the second argument or, preferably, entered at
the hidden prompt by omitting the value.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]

	var raw string
	if len(args) == 2 {
		raw = args[1]
	} else if secretKeys[key] {
		cmd.Printf("Enter value for %s: ", key)
		raw = readPassword()
		cmd.Println()
	} else {
		return errors.New("missing value argument")
	}

	if raw == "" {
		return errors.New("empty value")
	}

	if err := configStore.Set(key, coerceValue(raw)); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	val, ok := configStore.Get(key)
	if !ok {
		return fmt.Errorf("key %s is not set", key)
	}

	if str, isString := val.(string); isString && secretKeys[key] {
		cmd.Println(maskAPIKey(str))
		return nil
	}

	cmd.Printf("%v\n", val)
	return nil
}

// coerceValue turns CLI string input into a typed TOML value.
func coerceValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
