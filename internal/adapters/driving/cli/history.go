package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored chat sessions",
	Long:  `Lists every stored chat session, newest first.`,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [conversation-id]",
	Short: "Print the full transcript of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output sessions as JSON")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	sessions, err := historyService.Sessions(context.Background())
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sessions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(sessions) == 0 {
		cmd.Println("No stored sessions.")
		return nil
	}

	for i := range sessions {
		s := &sessions[i]
		cmd.Printf("  %s  %s  (%d messages)\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Header, len(s.Turns))
		cmd.Printf("      id: %s\n", s.ConversationID)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	sessions, err := historyService.Sessions(context.Background())
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	for i := range sessions {
		if sessions[i].ConversationID != args[0] {
			continue
		}
		for _, turn := range sessions[i].Turns {
			prefix := "you"
			if turn.Role == domain.RoleAssistant {
				prefix = "bot"
			}
			cmd.Printf("[%s] %s\n", prefix, turn.Content)
		}
		return nil
	}

	return fmt.Errorf("no session with id %s", args[0])
}
