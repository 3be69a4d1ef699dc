package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kss0704/codellm/internal/markdown"
	"github.com/kss0704/codellm/pkg/runner"
)

var (
	runIndexFlag   int
	runLangFlag    string
	runAllFlag     bool
	runTimeoutFlag time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute code blocks from a markdown file",
	Long: `Extract fenced code blocks from a markdown file (or stdin) and
execute them locally. Only python and javascript blocks are
executable; other languages are listed but skipped.

Each block runs from a temporary file with a timeout. Examples:

  codellm "fizzbuzz in python" -o answer.md
  codellm run answer.md                 Run the first executable block
  codellm run answer.md -n 2            Run block 2
  codellm run answer.md --all           Run every executable block
  cat answer.md | codellm run`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) > 0 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
		} else {
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}
		return runBlocks(string(data))
	},
}

func init() {
	runCmd.Flags().IntVarP(&runIndexFlag, "index", "n", 0, "Code block to run (1-based)")
	runCmd.Flags().StringVar(&runLangFlag, "lang", "", "Override the language tag of the selected blocks")
	runCmd.Flags().BoolVar(&runAllFlag, "all", false, "Run every executable block")
	runCmd.Flags().DurationVar(&runTimeoutFlag, "timeout", runner.DefaultTimeout, "Per-block execution timeout")
}

func runBlocks(text string) error {
	blocks := markdown.ExtractCodeBlocks(text)
	if len(blocks) == 0 {
		return fmt.Errorf("no code blocks found in input")
	}

	r := runner.New(runner.WithTimeout(runTimeoutFlag))

	// An explicit --lang overrides the fence tag of every selected block.
	tagFor := func(b markdown.CodeBlock) string {
		if runLangFlag != "" {
			return runLangFlag
		}
		return b.Language
	}

	// Pick the blocks to execute.
	var selected []int
	switch {
	case runIndexFlag > 0:
		if runIndexFlag > len(blocks) {
			return fmt.Errorf("block %d out of range: input has %d blocks", runIndexFlag, len(blocks))
		}
		selected = []int{runIndexFlag - 1}
	case runAllFlag:
		for i, b := range blocks {
			if runner.IsExecutable(tagFor(b)) {
				selected = append(selected, i)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("none of the %d blocks are executable", len(blocks))
		}
	default:
		for i, b := range blocks {
			if runner.IsExecutable(tagFor(b)) {
				selected = []int{i}
				break
			}
		}
		if selected == nil {
			return fmt.Errorf("none of the %d blocks are executable", len(blocks))
		}
	}

	var failed int
	for _, i := range selected {
		block := blocks[i]
		tag := tagFor(block)
		printRunHeader(i+1, tag)

		res := r.Run(context.Background(), block.Code, tag)
		printRunResult(res)
		if !res.Success {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d blocks failed", failed, len(selected))
	}
	return nil
}

func printRunHeader(index int, lang string) {
	header := lipgloss.NewStyle().Foreground(colorWarning).Bold(true).
		Render(fmt.Sprintf("▶ Block %d (%s)", index, lang))
	fmt.Fprintln(os.Stderr, header)
}

func printRunResult(res *runner.Result) {
	if res.Success {
		status := lipgloss.NewStyle().Foreground(colorSuccess).
			Render(fmt.Sprintf("✓ finished in %s", res.Duration.Round(time.Millisecond)))
		fmt.Fprintln(os.Stderr, status)
	} else {
		status := lipgloss.NewStyle().Foreground(colorError).
			Render(fmt.Sprintf("✗ failed (exit %d) after %s", res.ExitCode, res.Duration.Round(time.Millisecond)))
		fmt.Fprintln(os.Stderr, status)
	}

	if res.Output != "" {
		fmt.Println(res.Output)
	}
}
