package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// DefaultTimeout is the wall-clock budget for one snippet execution.
const DefaultTimeout = 10 * time.Second

// Runner executes snippets in one-shot subprocesses. Each run writes the
// code to a transient file, invokes the language's interpreter on it,
// and removes the file on every exit path.
type Runner struct {
	timeout time.Duration
	tempDir string
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout overrides the per-run deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithTempDir sets the directory for transient snippet files.
// Defaults to the system temp directory.
func WithTempDir(dir string) Option {
	return func(r *Runner) {
		r.tempDir = dir
	}
}

// New creates a Runner with optional configuration.
func New(opts ...Option) *Runner {
	r := &Runner{timeout: DefaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Timeout returns the per-run deadline.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// Run executes code under the given language tag and returns a tagged
// Result. Unsupported tags fail without creating a temporary file.
// Nothing here panics or returns an error: all failure modes are folded
// into the Result.
func (r *Runner) Run(ctx context.Context, code, tag string) *Result {
	lang, ok := Lookup(tag)
	if !ok || !lang.Supported {
		return failure(fmt.Sprintf("language %s not supported for execution", tag), -1)
	}

	tmp, err := os.CreateTemp(r.tempDir, "snippet-*"+lang.Ext)
	if err != nil {
		return failure(fmt.Sprintf("execution error: %v", err), -1)
	}
	path := tmp.Name()
	// Removal must happen on every path: success, nonzero exit,
	// timeout, or write failure.
	defer os.Remove(path)

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return failure(fmt.Sprintf("execution error: %v", err), -1)
	}
	if err := tmp.Close(); err != nil {
		return failure(fmt.Sprintf("execution error: %v", err), -1)
	}

	rctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(rctx, lang.Command, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	var res *Result
	switch {
	case rctx.Err() == context.DeadlineExceeded:
		res = failure("code execution timed out", -1)

	case runErr == nil:
		res = success(stdout.String(), 0)

	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res = failure(stderr.String(), exitErr.ExitCode())
		} else {
			// Interpreter missing, permissions, and similar setup faults.
			res = failure(fmt.Sprintf("execution error: %v", runErr), -1)
		}
	}

	res.Duration = elapsed
	return res
}
