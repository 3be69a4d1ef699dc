package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the connection to the Groq API",
	Long: `Send a minimal completion request to verify that the API key works
and the selected model responds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spin := newSpinner("Testing connection")
		spin.start()

		client, err := newClient(spin)
		if err != nil {
			spin.stopWithError()
			return err
		}

		start := time.Now()
		if _, err := client.Probe(context.Background()); err != nil {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Connection test failed"))
			return fmt.Errorf("connection test failed: %w", err)
		}

		spin.stopWithSuccess(fmt.Sprintf("Connected to %s in %s",
			client.Model().ID, time.Since(start).Round(time.Millisecond)))
		return nil
	},
}
