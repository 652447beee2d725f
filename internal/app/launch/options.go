// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"io"

	"smlaunch-cli/pkg/jobfile"
)

// Options configures one launch.
//
// Required: Job must be non-nil. All other fields are optional and default
// to their zero values.
type Options struct {
	// Job is the parsed job definition.
	Job *jobfile.Job

	// EnvFiles are --env-file dotenv paths, resolved relative to Cwd.
	EnvFiles []string

	// EnvVars are --env-var overrides; highest environment precedence.
	EnvVars map[string]string

	// Cwd is the invocation directory for resolving EnvFiles.
	Cwd string

	// Interactive attaches the entry point to a PTY.
	Interactive bool

	// Keep retains the workspace after the run.
	Keep bool

	// UploadArtifacts uploads the model dir after a successful run.
	UploadArtifacts bool

	// Stdout, Stderr and Stdin are attached to the entry point. Nil values
	// mean the process's own streams.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// Validate checks the options before any side effect.
func (o Options) Validate() error {
	if o.Job == nil {
		return fmt.Errorf("launch options: job must not be nil")
	}
	if errs := o.Job.Validate(); errs != nil {
		return errs
	}
	return nil
}
