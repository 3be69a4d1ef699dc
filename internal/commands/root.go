// Package commands provides CLI commands for codellm.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kss0704/codellm/internal/config"
	"github.com/kss0704/codellm/internal/models"
)

var (
	// Global flags
	modelFlag       string
	apiKeyFlag      string
	temperatureFlag float64
	maxTokensFlag   int
	outputFlag      string
	fileFlag        string
	rawFlag         bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "codellm [prompt]",
	Short: "LLM coding assistant powered by Groq",
	Long: `codellm is a command-line coding assistant backed by Groq's
chat-completions API. It answers programming questions, renders the
reply as markdown, and can execute python and javascript snippets
from the answer locally.

Set GROQ_API_KEY in your environment or pass --api-key.

Examples:
  codellm chat                          Start interactive chat
  codellm "binary search in Go"         Send a single query
  codellm -f prompt.md                  Read prompt from file
  cat prompt.md | codellm               Read prompt from stdin
  codellm "quicksort" -o answer.md      Save response to file
  codellm run answer.md                 Execute code blocks from a file
  codellm models                        List available models`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("codellm %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		// Check for file input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), resolveRawOutput(rawFlag))
		}

		// Check for stdin
		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), resolveRawOutput(rawFlag))
		}

		// Check for positional argument
		if len(args) > 0 {
			return runQuery(args[0], resolveRawOutput(rawFlag))
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., llama-3.1-8b-instant)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Groq API key (overrides GROQ_API_KEY)")
	rootCmd.PersistentFlags().Float64VarP(&temperatureFlag, "temperature", "t", -1, "Sampling temperature (0.0-1.0)")
	rootCmd.PersistentFlags().IntVar(&maxTokensFlag, "max-tokens", 0, "Maximum response tokens (500-32768)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw response without decoration")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(pingCmd)
}

// getModel returns the model to use (from flag or config)
func getModel() models.Model {
	if modelFlag != "" {
		return models.ModelFromName(modelFlag)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return models.DefaultModel
	}
	return models.ModelFromName(cfg.DefaultModel)
}

// getParams resolves generation parameters from flags over config.
func getParams() models.Params {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	p := models.Params{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
	if temperatureFlag >= 0 {
		p.Temperature = temperatureFlag
	}
	if maxTokensFlag > 0 {
		p.MaxTokens = maxTokensFlag
	}
	return p.Clamped()
}
