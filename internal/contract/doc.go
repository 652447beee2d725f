// SPDX-License-Identifier: MPL-2.0

// Package contract implements the script-mode execution contract: the fixed
// convention by which hyperparameters and data paths are exposed to a launched
// training script via command-line arguments and environment variables.
//
// The convention is deterministic by construction — identical inputs always
// produce identical argument vectors and environment maps — and must stay
// bit-exact: user scripts written against it run unmodified both locally and
// on a remote execution service.
package contract
