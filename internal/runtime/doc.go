// SPDX-License-Identifier: MPL-2.0

// Package runtime executes the job entry point inside a prepared workspace.
// The entry point is dispatched on its extension: .py scripts run as python
// modules from the code directory, .sh scripts run through the system shell.
// Output streams directly to the attached writers; the child's exit code is
// surfaced verbatim.
package runtime
