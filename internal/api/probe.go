package api

import (
	"context"

	"github.com/kss0704/codellm/internal/models"
)

// probePrompt is the fixed prompt used by the connection test.
const probePrompt = "Hello, just testing the connection. Please respond with 'Connection successful!'"

// Probe issues a small completion request to verify the credential and
// connectivity. Conservative parameters keep the probe cheap.
func (c *Client) Probe(ctx context.Context) (string, error) {
	return c.Complete(ctx,
		[]models.ChatMessage{{Role: models.RoleUser, Content: probePrompt}},
		models.Params{Temperature: 0.1, MaxTokens: models.MinMaxTokens},
	)
}
