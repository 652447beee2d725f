// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	"path/filepath"
	"strings"
)

type (
	// Job is a parsed training job definition.
	Job struct {
		// Name is the base name for launches of this job. Launch identifiers
		// are derived from it, so it must be a valid name fragment.
		Name string `json:"name"`

		// EntryPoint is the user-designated file executed as the main program,
		// relative to SourceDir (e.g., "train.py").
		EntryPoint string `json:"entry_point"`

		// SourceDir is the directory whose contents are installed as the
		// importable code unit. Relative paths resolve against the job file
		// location.
		SourceDir string `json:"source_dir"`

		// Hyperparameters is the named parameter mapping passed to the entry
		// point as command-line flags and SM_HP_* environment variables.
		Hyperparameters Hyperparameters `json:"hyperparameters,omitempty"`

		// Channels maps channel names to data sources (local paths or
		// object-store URIs).
		Channels map[ChannelName]ChannelSource `json:"channels,omitempty"`

		// Env holds extra environment configuration for the launched process.
		Env *EnvConfig `json:"env,omitempty"`

		// Template optionally overrides the framework defaults.
		Template *Template `json:"template,omitempty"`

		// FilePath is the location this job file was loaded from.
		// Set by Parse; not part of the CUE document.
		FilePath string `json:"-"`
	}
)

// ResolveSourceDir returns the absolute source directory, resolving relative
// paths against the job file location.
func (j *Job) ResolveSourceDir() string {
	if filepath.IsAbs(j.SourceDir) {
		return j.SourceDir
	}
	return filepath.Join(filepath.Dir(j.FilePath), filepath.FromSlash(j.SourceDir))
}

// ModuleName returns the module name derived from the entry point: the file
// name with its extension removed ("train.py" -> "train"). The entry point is
// executed as this module so user scripts behave identically under any host.
func (j *Job) ModuleName() string {
	base := filepath.Base(filepath.FromSlash(j.EntryPoint))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		return base[:idx]
	}
	return base
}

// EntryPointExt returns the entry point's file extension, including the dot.
func (j *Job) EntryPointExt() string {
	return filepath.Ext(j.EntryPoint)
}

// GetTemplate returns the job's template with unset fields filled from the
// framework defaults. Never returns nil.
func (j *Job) GetTemplate() *Template {
	return j.Template.WithDefaults()
}
