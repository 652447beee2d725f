// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrHookFailed marks build hook failures so callers can report them
// separately from dependency install failures.
var ErrHookFailed = errors.New("build hook failed")

// runHook executes the build hook script through the embedded shell
// interpreter with the source directory as working directory. The hook runs
// with the parent environment; anything it installs or generates must land in
// the source tree or the shared interpreter environment to be visible later.
func runHook(ctx context.Context, sourceDir string, stdout, stderr io.Writer) error {
	scriptPath := filepath.Join(sourceDir, HookScript)
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read build hook %s: %w", scriptPath, err)
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(string(script)), HookScript)
	if err != nil {
		return fmt.Errorf("build hook syntax error: %w", err)
	}

	runner, err := interp.New(
		interp.Dir(sourceDir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create hook interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return fmt.Errorf("build hook %s exited with status %d", HookScript, int(exitStatus))
		}
		return fmt.Errorf("build hook %s failed: %w", HookScript, err)
	}
	return nil
}
