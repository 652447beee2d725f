// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidEnvVarName is the sentinel error wrapped by InvalidEnvVarNameError.
	ErrInvalidEnvVarName = errors.New("invalid environment variable name")

	// envVarNameRegex validates environment variable names
	envVarNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// EnvVarName represents an environment variable name.
	// A valid name starts with a letter or underscore, followed by letters,
	// digits, or underscores (POSIX convention).
	EnvVarName string

	// DotenvFilePath is a path to a dotenv file, relative to the job file
	// location unless absolute. Paths suffixed with '?' are optional: a
	// missing optional file is not an error.
	DotenvFilePath string

	// InvalidEnvVarNameError is returned when an EnvVarName is empty,
	// whitespace-only, or not a POSIX env var name.
	InvalidEnvVarNameError struct {
		Value EnvVarName
	}

	// EnvConfig holds environment configuration for the launched process.
	EnvConfig struct {
		// Files lists dotenv files to load, in order; later files override
		// earlier ones.
		Files []DotenvFilePath `json:"files,omitempty"`
		// Vars contains inline environment variables. These override values
		// loaded from Files.
		Vars map[EnvVarName]string `json:"vars,omitempty"`
	}
)

// Error implements the error interface.
func (e *InvalidEnvVarNameError) Error() string {
	return fmt.Sprintf("invalid environment variable name %q (must match [A-Za-z_][A-Za-z0-9_]*)", e.Value)
}

// Unwrap returns ErrInvalidEnvVarName so callers can use errors.Is.
func (e *InvalidEnvVarNameError) Unwrap() error { return ErrInvalidEnvVarName }

// Validate returns nil if the EnvVarName is a valid POSIX env var name.
func (n EnvVarName) Validate() error {
	s := string(n)
	if strings.TrimSpace(s) == "" || !envVarNameRegex.MatchString(s) {
		return &InvalidEnvVarNameError{Value: n}
	}
	return nil
}

// String returns the string representation of the EnvVarName.
func (n EnvVarName) String() string { return string(n) }

// GetFiles returns the files list, or nil if EnvConfig is nil.
func (e *EnvConfig) GetFiles() []DotenvFilePath {
	if e == nil {
		return nil
	}
	return e.Files
}

// GetVars returns the vars as a map[string]string, converting typed keys back
// to raw strings for maps.Copy and exec.Cmd.Env consumers. Returns nil if
// EnvConfig is nil or Vars is empty.
func (e *EnvConfig) GetVars() map[string]string {
	if e == nil || e.Vars == nil {
		return nil
	}
	result := make(map[string]string, len(e.Vars))
	for k, v := range e.Vars {
		result[string(k)] = v
	}
	return result
}
