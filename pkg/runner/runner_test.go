package runner

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestRun_Python(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available in PATH")
	}

	r := New()
	res := r.Run(context.Background(), "print('hi')", "python")

	if !res.Success {
		t.Fatalf("Run() failed: %s", res.Output)
	}
	if strings.TrimSpace(res.Output) != "hi" {
		t.Errorf("Output = %q, want %q", res.Output, "hi")
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if res.Duration <= 0 {
		t.Error("Duration not recorded")
	}
}

func TestRun_Javascript(t *testing.T) {
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node not available in PATH")
	}

	r := New()
	res := r.Run(context.Background(), "console.log(6 * 7)", "javascript")

	if !res.Success {
		t.Fatalf("Run() failed: %s", res.Output)
	}
	if strings.TrimSpace(res.Output) != "42" {
		t.Errorf("Output = %q, want %q", res.Output, "42")
	}
}

func TestRun_NonzeroExitReportsStderr(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available in PATH")
	}

	r := New()
	res := r.Run(context.Background(), "import sys\nsys.stderr.write('boom\\n')\nsys.exit(3)", "python")

	if res.Success {
		t.Fatal("Run() succeeded, want failure")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(res.Output, "boom") {
		t.Errorf("Output = %q, want stderr content", res.Output)
	}
}

func TestRun_UnsupportedLanguage(t *testing.T) {
	tmpDir := t.TempDir()
	r := New(WithTempDir(tmpDir))

	res := r.Run(context.Background(), "disp('x')", "matlab")

	if res.Success {
		t.Fatal("Run() succeeded for unsupported language")
	}
	if !strings.Contains(res.Output, "not supported") {
		t.Errorf("Output = %q, want unsupported-language message", res.Output)
	}

	// Unsupported languages must not leave a temp file behind.
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d entries, want 0", len(entries))
	}
}

func TestRun_Timeout(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available in PATH")
	}

	r := New(WithTimeout(100 * time.Millisecond))
	res := r.Run(context.Background(), "while True:\n    pass", "python")

	if res.Success {
		t.Fatal("Run() succeeded, want timeout failure")
	}
	if !strings.Contains(res.Output, "timed out") {
		t.Errorf("Output = %q, want timeout message", res.Output)
	}
}

func TestRun_CleansUpTempFile(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available in PATH")
	}

	tmpDir := t.TempDir()
	r := New(WithTempDir(tmpDir))

	// Both success and failure paths must remove the snippet file.
	r.Run(context.Background(), "print('ok')", "python")
	r.Run(context.Background(), "import sys\nsys.exit(1)", "python")

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d leftover entries, want 0", len(entries))
	}
}

func TestWithTimeout(t *testing.T) {
	r := New(WithTimeout(5 * time.Second))
	if r.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", r.Timeout())
	}

	if New().Timeout() != DefaultTimeout {
		t.Errorf("default Timeout() = %v, want %v", New().Timeout(), DefaultTimeout)
	}
}
