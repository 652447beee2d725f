// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

type (
	// PipRunner runs pip in a working directory. Tests substitute a recorder;
	// *ExecPipRunner shells out to the configured interpreter.
	PipRunner interface {
		Install(ctx context.Context, workDir string, args ...string) error
	}

	// ExecPipRunner invokes pip as `<interpreter> -m pip install ...` so the
	// packages land in the same environment that later runs the entry point.
	ExecPipRunner struct {
		// Interpreter is the python executable, e.g. "python3".
		Interpreter string

		// Stdout and Stderr receive pip's streamed output. Either may be nil.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// Install implements PipRunner.
func (r *ExecPipRunner) Install(ctx context.Context, workDir string, args ...string) error {
	if r.Interpreter == "" {
		return fmt.Errorf("pip runner has no interpreter configured")
	}

	cmdArgs := append([]string{"-m", "pip", "install"}, args...)
	cmd := exec.CommandContext(ctx, r.Interpreter, cmdArgs...)
	cmd.Dir = workDir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install %v failed: %w", args, err)
	}
	return nil
}
