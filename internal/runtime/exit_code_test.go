// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestExitCodeIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code  ExitCode
		valid bool
	}{
		{0, true},
		{1, true},
		{255, true},
		{-1, false},
		{256, false},
	}

	for _, tt := range tests {
		valid, errs := tt.code.IsValid()
		if valid != tt.valid {
			t.Errorf("ExitCode(%d).IsValid() = %v, want %v", tt.code, valid, tt.valid)
		}
		if !valid {
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidExitCode) {
				t.Errorf("ExitCode(%d) errors = %v, want ErrInvalidExitCode", tt.code, errs)
			}
		}
	}
}

func TestExitCodeHelpers(t *testing.T) {
	t.Parallel()

	if !ExitCode(0).IsSuccess() || ExitCode(1).IsSuccess() {
		t.Error("IsSuccess misclassified")
	}
	if !ExitCode(126).IsSpawnFailure() || !ExitCode(127).IsSpawnFailure() || ExitCode(1).IsSpawnFailure() {
		t.Error("IsSpawnFailure misclassified")
	}
	if ExitCode(42).String() != "42" {
		t.Error("String() wrong")
	}
}
