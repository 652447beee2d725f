// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import "fmt"

const interactiveSupported = false

// RunInteractive is not supported on Windows; the launcher falls back to
// streaming execution.
func RunInteractive(_ *PreparedCommand) *Result {
	return NewErrorResult(1, fmt.Errorf("interactive mode is not supported on windows"))
}
