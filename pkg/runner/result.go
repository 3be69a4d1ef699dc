package runner

import "time"

// Result is the outcome of one snippet execution. Every execution path
// produces a Result; failures are advisory and never propagate as
// errors or panics to the caller.
type Result struct {
	// Success is true when the snippet ran and exited zero.
	Success bool

	// Output is stdout on success; stderr or a diagnostic on failure.
	Output string

	// ExitCode is the process exit code, or -1 when no process ran.
	ExitCode int

	// Duration is the wall-clock time spent on the attempt.
	Duration time.Duration
}

// success builds a successful Result from captured stdout.
func success(stdout string, exitCode int) *Result {
	return &Result{Success: true, Output: stdout, ExitCode: exitCode}
}

// failure builds a failed Result from a diagnostic.
func failure(diagnostic string, exitCode int) *Result {
	return &Result{Success: false, Output: diagnostic, ExitCode: exitCode}
}
