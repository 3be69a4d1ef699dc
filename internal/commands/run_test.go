package commands

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/kss0704/codellm/pkg/runner"
)

func TestRunBlocks_NoBlocks(t *testing.T) {
	err := runBlocks("prose with no fences")
	if err == nil || !strings.Contains(err.Error(), "no code blocks") {
		t.Errorf("runBlocks() error = %v, want no-code-blocks error", err)
	}
}

func TestRunBlocks_NoneExecutable(t *testing.T) {
	err := runBlocks("```go\nfmt.Println(1)\n```\n```sql\nselect 1;\n```")
	if err == nil || !strings.Contains(err.Error(), "executable") {
		t.Errorf("runBlocks() error = %v, want none-executable error", err)
	}
}

func TestRunBlocks_IndexOutOfRange(t *testing.T) {
	runIndexFlag = 5
	defer func() { runIndexFlag = 0 }()

	err := runBlocks("```python\nprint(1)\n```")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("runBlocks() error = %v, want out-of-range error", err)
	}
}

func TestRunBlocks_FirstExecutable(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available in PATH")
	}

	runIndexFlag = 0
	runAllFlag = false
	runTimeoutFlag = runner.DefaultTimeout

	// The go block is skipped; the python block runs.
	text := "```go\nfmt.Println(1)\n```\n```python\nprint('picked')\n```"
	if err := runBlocks(text); err != nil {
		t.Fatalf("runBlocks() error = %v", err)
	}
}

func TestRunBlocks_LangOverride(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available in PATH")
	}

	runLangFlag = "python"
	defer func() { runLangFlag = "" }()
	runIndexFlag = 0
	runAllFlag = false
	runTimeoutFlag = runner.DefaultTimeout

	// The untagged block defaults to "text"; --lang forces it through python.
	if err := runBlocks("```\nprint('forced')\n```"); err != nil {
		t.Fatalf("runBlocks() error = %v", err)
	}
}

func TestRunBlocks_FailurePropagates(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available in PATH")
	}

	runIndexFlag = 0
	runAllFlag = false
	runTimeoutFlag = runner.DefaultTimeout

	err := runBlocks("```python\nimport sys\nsys.exit(2)\n```")
	if err == nil || !strings.Contains(err.Error(), "failed") {
		t.Errorf("runBlocks() error = %v, want failure summary", err)
	}
}
