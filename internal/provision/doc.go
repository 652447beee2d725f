// SPDX-License-Identifier: MPL-2.0

// Package provision installs the dependencies a user script directory declares
// before anything in that directory runs. The order is fixed: manifest
// dependencies first, then the build hook, then the package itself. A failure
// at any step aborts the launch before the entry point starts.
package provision
