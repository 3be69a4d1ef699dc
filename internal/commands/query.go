package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/kss0704/codellm/internal/api"
	"github.com/kss0704/codellm/internal/config"
	apierrors "github.com/kss0704/codellm/internal/errors"
	"github.com/kss0704/codellm/internal/markdown"
	"github.com/kss0704/codellm/internal/models"
	"github.com/kss0704/codellm/internal/render"
	"github.com/kss0704/codellm/internal/session"
	"github.com/kss0704/codellm/pkg/runner"
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(0)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// newClient builds an API client from the resolved flags, wiring retry
// progress into the spinner when one is active.
func newClient(spin *spinner) (*api.Client, error) {
	key := config.APIKey(apiKeyFlag)
	if key == "" {
		return nil, fmt.Errorf("no API key: set %s or pass --api-key", config.APIKeyEnvVar)
	}

	opts := []api.ClientOption{
		api.WithModel(getModel()),
	}
	if spin != nil {
		opts = append(opts, api.WithNotifier(func(ev api.RetryEvent) {
			spin.setMessage(fmt.Sprintf("Retrying (%s, attempt %d)", ev.Reason, ev.Attempt+2))
		}))
	}

	return api.NewClient(key, opts...), nil
}

// runQuery executes a single query and outputs the response
// If rawOutput is true, only the raw response text is printed without decoration
func runQuery(prompt string, rawOutput bool) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	cfg, _ := config.LoadConfig()

	var spin *spinner
	if !rawOutput {
		spin = newSpinner("Generating response")
		spin.start()
	}

	client, err := newClient(spin)
	if err != nil {
		if !rawOutput {
			spin.stopWithError()
		}
		return err
	}

	sess := session.New()
	sess.Append(models.RoleUser, prompt)

	startTime := time.Now()
	text, err := client.Complete(context.Background(), sess.Outbound(), getParams())
	requestDuration := time.Since(startTime)

	if err != nil {
		if !rawOutput {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Request failed"))
		}
		return fmt.Errorf("request failed: %w", err)
	}
	if !rawOutput {
		spin.stopWithSuccess(fmt.Sprintf("Done in %s", requestDuration.Round(time.Millisecond)))
	}

	// Raw output mode: output only the raw text
	if rawOutput {
		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Print(text)
		return nil
	}

	// Decorated output mode (TTY)
	fmt.Fprintln(os.Stderr)

	// Copy to clipboard if enabled in config
	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(os.Stderr, warnMsg)
		} else {
			clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(os.Stderr, clipMsg)
		}
	}

	// Output to file if specified
	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Response saved to %s", outputFlag),
		)
		fmt.Fprintln(os.Stderr, successMsg)
		return nil
	}

	// Get terminal width for proper formatting
	termWidth := getTerminalWidth()
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	// Print assistant label (similar to chat TUI)
	label := assistantLabelStyle.Render("⌘ CodeMaster")
	fmt.Println(label)

	// Render markdown for terminal output using user config
	rendered, err := render.Markdown(text, render.FromConfig(cfg.Markdown, contentWidth))
	if err != nil {
		rendered = text
	}
	rendered = strings.TrimRight(rendered, "\n")

	bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
	fmt.Println(bubble)

	// Summarize extracted code blocks with a hint to execute them
	if blocks := markdown.ExtractCodeBlocks(text); len(blocks) > 0 {
		var parts []string
		for i, b := range blocks {
			tag := b.Language
			if !runner.IsExecutable(tag) {
				tag += " (view only)"
			}
			parts = append(parts, badgeStyle.Render(fmt.Sprintf("[%d]", i+1))+dimStyle.Render(" "+tag))
		}
		fmt.Fprintln(os.Stderr, strings.Join(parts, "  "))
		fmt.Fprintln(os.Stderr, dimStyle.Render("Save with -o and execute with 'codellm run <file> -n N'"))
	}

	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveRawOutput decides between raw and decorated output: --raw
// always wins, and piped stdout falls back to raw so downstream tools
// never see ANSI decoration.
func resolveRawOutput(rawFlag bool) bool {
	return rawFlag || !isStdoutTTY()
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	// Extract additional context from structured errors
	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if detail := apierrors.GetDetail(err); detail != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  %s", strings.ReplaceAll(detail, "\n", "\n  "))))
	}

	// Provide helpful hints based on error type
	switch {
	case apierrors.IsAuthError(err):
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Hint: Check %s or pass --api-key", config.APIKeyEnvVar)))
	case apierrors.IsRateLimitError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: You've hit the usage limit. Try again later or use a different model"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	case apierrors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Request timed out. Try again or check your connection"))
	case apierrors.IsMalformedResponseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The API returned an unexpected payload. Try a different model"))
	}

	return sb.String()
}
