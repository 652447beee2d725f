// SPDX-License-Identifier: MPL-2.0

package contract

import (
	"os"
	"path/filepath"

	"smlaunch-cli/pkg/jobfile"
)

// Conventional path segments under the execution root. On a managed training
// host the root is /opt/ml; locally it is a per-launch scratch directory so
// runs never touch the real /opt/ml.
const (
	InputSegment       = "input"
	InputConfigSegment = "input/config"
	InputDataSegment   = "input/data"
	ModelSegment       = "model"
	OutputSegment      = "output"
	OutputDataSegment  = "output/data"
	CodeSegment        = "code"
)

// Layout is the fixed directory layout of one execution environment, rooted
// at a per-launch directory. All paths are absolute and derived; Layout holds
// no state beyond the root.
type Layout struct {
	root string
}

// NewLayout returns the layout rooted at root. The root must be absolute so
// derived paths are stable regardless of the launcher's working directory.
func NewLayout(root string) Layout {
	return Layout{root: root}
}

// Root returns the execution root directory.
func (l Layout) Root() string { return l.root }

// InputDir returns the root directory under which all input lives.
func (l Layout) InputDir() string { return filepath.Join(l.root, InputSegment) }

// InputConfigDir returns the directory holding launch configuration documents.
func (l Layout) InputConfigDir() string { return filepath.Join(l.root, filepath.FromSlash(InputConfigSegment)) }

// DataDir returns the root directory under which all channel data lives.
func (l Layout) DataDir() string { return filepath.Join(l.root, filepath.FromSlash(InputDataSegment)) }

// ChannelDir returns the distinct, predictable directory where the named
// channel's data is materialized.
func (l Layout) ChannelDir(name jobfile.ChannelName) string {
	return filepath.Join(l.DataDir(), string(name))
}

// ModelDir returns the directory where the script must write persisted model
// artifacts for them to be retained after the process exits.
func (l Layout) ModelDir() string { return filepath.Join(l.root, ModelSegment) }

// OutputDir returns the directory for non-model outputs (failure files, etc.).
func (l Layout) OutputDir() string { return filepath.Join(l.root, OutputSegment) }

// OutputDataDir returns the directory for auxiliary output data.
func (l Layout) OutputDataDir() string { return filepath.Join(l.root, filepath.FromSlash(OutputDataSegment)) }

// CodeDir returns the directory the source directory is installed into and
// the working directory of the launched process.
func (l Layout) CodeDir() string { return filepath.Join(l.root, CodeSegment) }

// Materialize creates the full directory tree. Channel directories are
// created separately during staging.
func (l Layout) Materialize() error {
	dirs := []string{
		l.InputConfigDir(),
		l.DataDir(),
		l.ModelDir(),
		l.OutputDataDir(),
		l.CodeDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
