// SPDX-License-Identifier: Apache-2.0

// Package render invokes the Robot Framework rebot tool to turn a standalone
// chunk document into an HTML log.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// DefaultBinary is the rebot executable looked up on PATH.
const DefaultBinary = "rebot"

// ErrRendererNotFound is returned when the renderer executable is missing.
var ErrRendererNotFound = errors.New("renderer executable not found")

// ExitError reports a renderer run that finished with a non-zero exit code.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("renderer exited with code %d", e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Job describes one rendering request.
type Job struct {
	// Input is the standalone document.
	Input string
	// Log is the HTML log to produce.
	Log string
	// Name is the display name of the top-level suite in the log.
	Name string
}

// Renderer turns a chunk document into a human-readable report.
type Renderer interface {
	Render(ctx context.Context, job Job) error
}

// Rebot runs the rebot command line tool.
type Rebot struct {
	// Binary is the executable name or path. Empty means DefaultBinary.
	Binary string
	// Timeout bounds a single run. Zero means no timeout.
	Timeout time.Duration
}

// NewRebot creates a Rebot renderer.
func NewRebot(binary string, timeout time.Duration) *Rebot {
	return &Rebot{Binary: binary, Timeout: timeout}
}

// Args returns the rebot arguments for job: no output.xml, the HTML log at
// job.Log, the display name, and an exit code that ignores test status.
func (r *Rebot) Args(job Job) []string {
	return []string{
		"--output", "NONE",
		"--log", job.Log,
		"--name", job.Name,
		"--nostatusrc",
		job.Input,
	}
}

// Render runs rebot for job. Exit code zero is success whatever the test
// outcome was.
func (r *Rebot) Render(ctx context.Context, job Job) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, r.Args(job)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRendererNotFound, binary)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return fmt.Errorf("render %s: %w", job.Input, ctx.Err())
		}
		return &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	return fmt.Errorf("run %s: %w", binary, err)
}
