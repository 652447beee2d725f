// SPDX-License-Identifier: MPL-2.0

// Package workspace creates isolated per-launch execution roots. Every launch
// gets a fresh directory tree named after the job; concurrent launches never
// share filesystem state.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"smlaunch-cli/internal/contract"
)

// Workspace is one launch's execution root plus its derived layout.
type Workspace struct {
	jobName string
	layout  contract.Layout
}

// timestampFormat matches the job-name convention <base>-<timestamp>-<suffix>.
const timestampFormat = "20060102-150405"

// New creates a fresh execution root under baseDir for a launch of jobBase.
// The job name embeds a timestamp and a short random suffix so repeated and
// concurrent launches of the same job stay isolated.
func New(baseDir, jobBase string) (*Workspace, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("workspace base directory must not be empty")
	}

	jobName := fmt.Sprintf("%s-%s-%s", jobBase, time.Now().UTC().Format(timestampFormat), shortSuffix())
	root := filepath.Join(baseDir, jobName)

	if _, err := os.Stat(root); err == nil {
		return nil, fmt.Errorf("workspace %s already exists", root)
	}

	layout := contract.NewLayout(root)
	if err := layout.Materialize(); err != nil {
		return nil, fmt.Errorf("failed to create workspace at %s: %w", root, err)
	}

	return &Workspace{jobName: jobName, layout: layout}, nil
}

// Open returns the workspace for an existing root. Used by inspection paths
// that derive env/args for a root created elsewhere.
func Open(root, jobName string) *Workspace {
	return &Workspace{jobName: jobName, layout: contract.NewLayout(root)}
}

// JobName returns the unique launch identifier.
func (w *Workspace) JobName() string { return w.jobName }

// Layout returns the contract layout rooted at this workspace.
func (w *Workspace) Layout() contract.Layout { return w.layout }

// Root returns the execution root directory.
func (w *Workspace) Root() string { return w.layout.Root() }

// Remove deletes the entire execution root. Artifacts the caller wants to
// keep must be collected before calling this.
func (w *Workspace) Remove() error {
	return os.RemoveAll(w.layout.Root())
}

func shortSuffix() string {
	return uuid.NewString()[:8]
}
