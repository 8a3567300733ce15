package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nomad-labs/nomad-cli/internal/adapters/driving/tui"
)

// chatCmd launches the interactive terminal chat.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat UI",
	Long: `Launch the interactive terminal chat with the travel assistant.

Every exchange is stored in the chat history; the sidebar lists past
sessions and lets you reopen them.

Controls:
  Enter     - Send message
  Tab       - Toggle history sidebar
  ↑/k, ↓/j  - Navigate sessions in the sidebar
  Esc       - Close sidebar / quit
  Ctrl+C    - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if botService == nil {
		return errors.New("bot service not configured: set openai.api_key with 'nomad config set'")
	}

	if err := ensureIngested(cmd.Context()); err != nil {
		return err
	}

	ports := &tui.Ports{
		Bot:     botService,
		History: historyService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	return nil
}
