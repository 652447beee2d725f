// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load job file"},
			expected: "failed to load job file",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load job file",
				Resource:  "./smjob.cue",
			},
			expected: "failed to load job file: ./smjob.cue",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "stage channel",
				Cause:     errors.New("bucket does not exist"),
			},
			expected: "failed to stage channel: bucket does not exist",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load job file",
				Resource:  "./smjob.cue",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load job file: ./smjob.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through to the cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableErrorFormat(t *testing.T) {
	t.Parallel()

	err := &ActionableError{
		Operation:   "install dependencies",
		Resource:    "requirements.txt",
		Suggestions: []string{"Check the pinned versions", "Run pip install manually"},
		Cause:       errors.New("resolver failed"),
	}

	concise := err.Format(false)
	if !strings.Contains(concise, "failed to install dependencies") {
		t.Errorf("missing main message: %q", concise)
	}
	if !strings.Contains(concise, "Check the pinned versions") {
		t.Errorf("missing suggestion: %q", concise)
	}
	if strings.Contains(concise, "Error chain") {
		t.Error("non-verbose format included error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "resolver failed") {
		t.Errorf("verbose format missing chain: %q", verbose)
	}
}

func TestErrorContextBuilder(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewErrorContext().
		WithOperation("download channel").
		WithResource("s3://data/sherlock").
		WithSuggestion("Check the object store endpoint").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil with operation set")
	}
	if err.Operation != "download channel" || err.Resource != "s3://data/sherlock" {
		t.Errorf("built error = %+v", err)
	}
	if !err.HasSuggestions() {
		t.Error("suggestions lost")
	}
	if !errors.Is(err, cause) {
		t.Error("cause lost")
	}
}

func TestErrorContextRequiresOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "op") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("boom")
	wrapped := WrapWithContext(cause, "materialize workspace", "/tmp/job")
	if wrapped.Error() != "failed to materialize workspace: /tmp/job: boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}
