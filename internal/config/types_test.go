// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorSchemeValidate(t *testing.T) {
	t.Parallel()

	for _, valid := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if err := valid.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", valid, err)
		}
	}

	err := ColorScheme("neon").Validate()
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("Validate(neon) = %v, want ErrInvalidColorScheme", err)
	}
}

func TestObjectStoreConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     ObjectStoreConfig
		wantErr bool
	}{
		{name: "empty is valid", cfg: ObjectStoreConfig{}},
		{
			name: "complete is valid",
			cfg:  ObjectStoreConfig{Endpoint: "e", AccessKey: "a", SecretKey: "s"},
		},
		{
			name:    "endpoint without credentials",
			cfg:     ObjectStoreConfig{Endpoint: "e"},
			wantErr: true,
		},
		{
			name:    "credentials without endpoint",
			cfg:     ObjectStoreConfig{AccessKey: "a"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidObjectStoreConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidObjectStoreConfig", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	empty := &Config{UI: UIConfig{ColorScheme: ColorSchemeAuto}}
	if err := empty.Validate(); !errors.Is(err, ErrInvalidInterpreter) {
		t.Errorf("empty interpreter: %v, want ErrInvalidInterpreter", err)
	}

	bad := DefaultConfig()
	bad.Artifacts.Upload = true
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("upload without bucket/store: %v, want ErrInvalidConfig", err)
	}
}
