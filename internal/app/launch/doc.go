// SPDX-License-Identifier: MPL-2.0

// Package launch orchestrates one training launch end to end: validate the
// job, create the workspace, package and provision the source directory,
// stage channels, derive the contract, execute the entry point, and collect
// artifacts. The pipeline is linear; the first failure aborts the launch
// before any later step runs.
package launch
