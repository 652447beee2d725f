// SPDX-License-Identifier: MPL-2.0

// Package issue holds the catalog of user-facing failure explanations and the
// ActionableError type the CLI renders them with. Every fatal launcher
// condition maps to one catalog entry with markdown guidance.
package issue
