// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidInterpreter is returned when the interpreter setting is whitespace-only.
	ErrInvalidInterpreter = errors.New("invalid interpreter")
	// ErrInvalidObjectStoreConfig is the sentinel error wrapped by InvalidObjectStoreConfigError.
	ErrInvalidObjectStoreConfig = errors.New("invalid object store config")
	// ErrInvalidConfig is the sentinel error for whole-config validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ObjectStoreConfig holds S3-compatible object-store settings used for
	// remote channel staging and artifact upload. All fields empty means no
	// object store is configured, which is valid as long as every channel in
	// a job is local.
	ObjectStoreConfig struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Region    string `mapstructure:"region"`
		UseSSL    bool   `mapstructure:"use_ssl"`
	}

	// InvalidObjectStoreConfigError is returned when object store settings
	// are partially filled in.
	InvalidObjectStoreConfigError struct {
		Reason string
	}

	// ArtifactsConfig controls post-run model artifact upload.
	ArtifactsConfig struct {
		// Upload enables artifact upload after a successful run.
		Upload bool `mapstructure:"upload"`
		// Bucket is the destination bucket. Required when Upload is true.
		Bucket string `mapstructure:"bucket"`
		// Prefix is prepended to the per-job object prefix.
		Prefix string `mapstructure:"prefix"`
	}

	// UIConfig holds terminal presentation preferences.
	UIConfig struct {
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		Verbose     bool        `mapstructure:"verbose"`
	}

	// Config is the launcher configuration.
	Config struct {
		// Interpreter is the default python executable for jobs that do not
		// set one in their template.
		Interpreter string `mapstructure:"interpreter"`

		// WorkspaceDir is the base directory for per-launch workspaces.
		// Empty selects the system temp directory.
		WorkspaceDir string `mapstructure:"workspace_dir"`

		// KeepWorkspace retains workspaces after the run instead of
		// removing them.
		KeepWorkspace bool `mapstructure:"keep_workspace"`

		// LogLevel is the launcher log level (debug, info, warn, error).
		LogLevel string `mapstructure:"log_level"`

		ObjectStore ObjectStoreConfig `mapstructure:"object_store"`
		Artifacts   ArtifactsConfig   `mapstructure:"artifacts"`
		UI          UIConfig          `mapstructure:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be auto, dark, or light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns nil if the ColorScheme is a recognized value.
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: s}
	}
}

// Error implements the error interface.
func (e *InvalidObjectStoreConfigError) Error() string {
	return fmt.Sprintf("invalid object store config: %s", e.Reason)
}

// Unwrap returns ErrInvalidObjectStoreConfig so callers can use errors.Is.
func (e *InvalidObjectStoreConfigError) Unwrap() error { return ErrInvalidObjectStoreConfig }

// IsConfigured reports whether an endpoint is set.
func (c ObjectStoreConfig) IsConfigured() bool {
	return c.Endpoint != ""
}

// Validate checks that the settings are empty or complete. Partial
// credentials are a configuration mistake, not a fallback path.
func (c ObjectStoreConfig) Validate() error {
	if !c.IsConfigured() {
		if c.AccessKey != "" || c.SecretKey != "" {
			return &InvalidObjectStoreConfigError{Reason: "credentials set without an endpoint"}
		}
		return nil
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return &InvalidObjectStoreConfigError{Reason: "endpoint set without credentials"}
	}
	return nil
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Interpreter: "python3",
		LogLevel:    "info",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks the whole configuration for constraints the CUE schema
// cannot express or that must hold after defaulting.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Interpreter) == "" {
		errs = append(errs, fmt.Errorf("%w: must not be empty", ErrInvalidInterpreter))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.ObjectStore.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Artifacts.Upload && c.Artifacts.Bucket == "" {
		errs = append(errs, fmt.Errorf("%w: artifacts.upload requires artifacts.bucket", ErrInvalidConfig))
	}
	if c.Artifacts.Upload && !c.ObjectStore.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: artifacts.upload requires an object_store", ErrInvalidConfig))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
