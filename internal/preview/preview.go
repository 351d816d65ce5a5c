// Package preview executes a generated statusline script as a subprocess
// the way the host would: one JSON object on stdin, rendered line on
// stdout, wall-clock measured. The runner enforces its own hard timeout
// independent of any timeout embedded in the script.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/NikitaCOEUR/statline/internal/serrors"
	"github.com/NikitaCOEUR/statline/internal/timing"
)

const (
	// HardTimeout bounds one preview execution.
	HardTimeout = 5 * time.Second
	// SoftBudget is the per-render-tick budget the generated script is
	// designed around. Exceeding it is reported, not fatal.
	SoftBudget = 100 * time.Millisecond
)

// Result reports one preview execution.
type Result struct {
	Output   string
	Stderr   string
	Duration time.Duration
	ExitCode int
	TimedOut bool
}

// Pass reports whether the script ran to completion successfully.
func (r *Result) Pass() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// WithinBudget reports whether the run fit the soft performance budget.
func (r *Result) WithinBudget() bool {
	return r.Duration <= SoftBudget
}

// sampleInput mirrors the JSON object the host feeds the script.
type sampleInput struct {
	Cwd       string `json:"cwd"`
	Workspace struct {
		CurrentDir string `json:"current_dir"`
	} `json:"workspace"`
	Model struct {
		DisplayName string `json:"display_name"`
		Version     string `json:"version"`
	} `json:"model"`
}

// SampleInput builds a representative host payload for preview runs.
func SampleInput() []byte {
	var in sampleInput
	wd, err := os.Getwd()
	if err != nil {
		wd = "/tmp"
	}
	in.Cwd = wd
	in.Workspace.CurrentDir = wd
	in.Model.DisplayName = "Claude"
	in.Model.Version = "1.0"

	data, _ := json.Marshal(in)
	return data
}

// Run writes scriptText to a private temp file and executes it with input
// on stdin. A timed-out or failing script still yields a Result; only
// setup problems return an error.
func Run(ctx context.Context, scriptText string, input []byte) (*Result, error) {
	dir, err := os.MkdirTemp("", "statline-preview-")
	if err != nil {
		return nil, serrors.NewPreviewError("", "failed to create preview directory", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "statusline.sh")
	if err := os.WriteFile(path, []byte(scriptText), 0o700); err != nil {
		return nil, serrors.NewPreviewError(path, "failed to write preview script", err)
	}

	ctx, cancel := context.WithTimeout(ctx, HardTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	timer := timing.NewTimer()
	runErr := cmd.Run()
	duration := timer.Elapsed()

	result := &Result{
		Output:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else if !result.TimedOut {
			return nil, serrors.NewPreviewError(path, "failed to execute preview script", runErr)
		}
	}

	return result, nil
}
