// Package quality invokes third-party Python linters and formatters as
// external processes. Results are display-only: they are never merged into
// the static-analysis score. Every failure mode resolves to one of four
// statuses; nothing here returns an unhandled fault to the caller.
package quality

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Status is the tri-state (plus invocation error) outcome of one tool run.
type Status string

const (
	StatusOK      Status = "ok"
	StatusIssue   Status = "issue"
	StatusMissing Status = "missing"
	StatusError   Status = "error"
)

// ToolResult is the outcome of running a single external tool on a file.
type ToolResult struct {
	Tool   string
	Status Status
	Output string
}

const defaultTimeout = 5 * time.Second

// Runner executes external linters with a per-invocation timeout.
type Runner struct {
	Timeout time.Duration
}

// NewRunner returns a Runner with the default 5s timeout.
func NewRunner() *Runner {
	return &Runner{Timeout: defaultTimeout}
}

// Ruff runs "ruff check" on a file.
func (r *Runner) Ruff(ctx context.Context, path string) ToolResult {
	return r.run(ctx, "ruff", "check", "--output-format=concise", path)
}

// BlackCheck runs black in check mode, reporting the diff it would apply.
func (r *Runner) BlackCheck(ctx context.Context, path string) ToolResult {
	return r.run(ctx, "black", "--check", "--diff", path)
}

// Flake8 runs flake8 on a file.
func (r *Runner) Flake8(ctx context.Context, path string) ToolResult {
	return r.run(ctx, "flake8", path)
}

// RunAll runs every known tool against the file.
func (r *Runner) RunAll(ctx context.Context, path string) []ToolResult {
	return []ToolResult{
		r.Ruff(ctx, path),
		r.BlackCheck(ctx, path),
		r.Flake8(ctx, path),
	}
}

// run executes one command and maps its outcome onto a status. A clean exit
// is "ok", a nonzero exit is "issue" (linters signal findings through exit
// codes), an absent binary is "missing" and anything else is "error".
func (r *Runner) run(ctx context.Context, name string, args ...string) ToolResult {
	if _, err := exec.LookPath(name); err != nil {
		return ToolResult{Tool: name, Status: StatusMissing, Output: name + " not installed"}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	output := outBuf.String() + errBuf.String()

	switch {
	case err == nil:
		return ToolResult{Tool: name, Status: StatusOK, Output: output}
	case ctx.Err() != nil:
		return ToolResult{Tool: name, Status: StatusError, Output: ctx.Err().Error()}
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ToolResult{Tool: name, Status: StatusIssue, Output: output}
		}
		return ToolResult{Tool: name, Status: StatusError, Output: err.Error()}
	}
}
