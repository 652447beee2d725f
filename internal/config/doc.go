// SPDX-License-Identifier: MPL-2.0

// Package config loads launcher configuration from a CUE file validated
// against an embedded schema, with platform-conventional config directory
// resolution. Loading is explicit: callers pass LoadOptions and receive a
// Config struct; there is no ambient global configuration state.
package config
