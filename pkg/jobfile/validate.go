// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrInvalidJobName is the sentinel error wrapped by InvalidJobNameError.
	ErrInvalidJobName = errors.New("invalid job name")

	// ErrInvalidEntryPoint is the sentinel error wrapped by InvalidEntryPointError.
	ErrInvalidEntryPoint = errors.New("invalid entry point")

	// jobNameRegex validates job names. Launch identifiers embed the name, so
	// it is restricted to DNS-label-ish characters.
	jobNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

type (
	// ValidationErrors aggregates all validation failures for a job file so
	// users see every problem in one pass rather than one per run.
	ValidationErrors []error

	// InvalidJobNameError is returned when a job name is empty or not a valid
	// name fragment.
	InvalidJobNameError struct {
		Value string
	}

	// InvalidEntryPointError is returned when an entry point is empty,
	// absolute, or escapes the source directory.
	InvalidEntryPointError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface, joining all failures line by line.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("job definition has %d problem(s):\n  %s", len(v), strings.Join(msgs, "\n  "))
}

// Unwrap exposes the individual errors for errors.Is/As.
func (v ValidationErrors) Unwrap() []error { return v }

// Error implements the error interface.
func (e *InvalidJobNameError) Error() string {
	return fmt.Sprintf("invalid job name %q (must match [a-z][a-z0-9-]*)", e.Value)
}

// Unwrap returns ErrInvalidJobName for errors.Is compatibility.
func (e *InvalidJobNameError) Unwrap() error { return ErrInvalidJobName }

// Error implements the error interface.
func (e *InvalidEntryPointError) Error() string {
	return fmt.Sprintf("invalid entry point %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidEntryPoint for errors.Is compatibility.
func (e *InvalidEntryPointError) Unwrap() error { return ErrInvalidEntryPoint }

// Validate checks all Go-level rules the CUE schema cannot express and
// returns every problem found. A nil return means the job is well-formed.
func (j *Job) Validate() ValidationErrors {
	var errs ValidationErrors

	if !jobNameRegex.MatchString(j.Name) {
		errs = append(errs, &InvalidJobNameError{Value: j.Name})
	}

	errs = append(errs, validateEntryPoint(j.EntryPoint)...)

	if strings.TrimSpace(j.SourceDir) == "" {
		errs = append(errs, fmt.Errorf("source_dir must not be empty"))
	}

	errs = append(errs, j.Hyperparameters.Validate()...)

	for name, source := range j.Channels {
		if err := name.Validate(); err != nil {
			errs = append(errs, err)
		}
		if err := source.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if j.Env != nil {
		for name := range j.Env.Vars {
			if err := name.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEntryPoint(entryPoint string) []error {
	if strings.TrimSpace(entryPoint) == "" {
		return []error{&InvalidEntryPointError{Value: entryPoint, Reason: "must not be empty"}}
	}
	if filepath.IsAbs(entryPoint) {
		return []error{&InvalidEntryPointError{Value: entryPoint, Reason: "must be relative to source_dir"}}
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(entryPoint)))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return []error{&InvalidEntryPointError{Value: entryPoint, Reason: "must not escape source_dir"}}
	}
	return nil
}
