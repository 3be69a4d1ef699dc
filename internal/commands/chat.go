package commands

import (
	"github.com/spf13/cobra"

	"github.com/kss0704/codellm/internal/session"
	"github.com/kss0704/codellm/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the coding assistant.

The chat keeps conversation context across messages and lets you
execute python and javascript snippets from the answers with /run N.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	client, err := newClient(nil)
	if err != nil {
		return err
	}

	return tui.RunChat(client, session.New(), getParams())
}
