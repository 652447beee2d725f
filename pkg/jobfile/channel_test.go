// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	"errors"
	"testing"
)

func TestChannelNameValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    ChannelName
		wantErr bool
	}{
		{name: "training", wantErr: false},
		{name: "validation", wantErr: false},
		{name: "eval_2", wantErr: false},
		{name: "", wantErr: true},
		{name: "Training", wantErr: true},
		{name: "2nd", wantErr: true},
		{name: "has space", wantErr: true},
		{name: "has-dash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			t.Parallel()

			err := tt.name.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidChannelName) {
				t.Errorf("error does not wrap ErrInvalidChannelName: %v", err)
			}
		})
	}
}

func TestChannelNameEnvSuffixInjective(t *testing.T) {
	t.Parallel()

	// Valid names are lowercase, so the uppercase transform can never map two
	// distinct valid names to the same suffix.
	names := []ChannelName{"training", "validation", "eval_2", "test"}
	seen := make(map[string]ChannelName)
	for _, n := range names {
		if err := n.Validate(); err != nil {
			t.Fatalf("fixture name %q invalid: %v", n, err)
		}
		suffix := n.EnvSuffix()
		if prev, ok := seen[suffix]; ok {
			t.Errorf("names %q and %q collide on suffix %q", prev, n, suffix)
		}
		seen[suffix] = n
	}

	if got := ChannelName("training").EnvSuffix(); got != "TRAINING" {
		t.Errorf("EnvSuffix(training) = %q, want TRAINING", got)
	}
}

func TestChannelSourceBucketPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     ChannelSource
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{name: "bucket and prefix", source: "s3://data/sherlock/raw", wantBucket: "data", wantPrefix: "sherlock/raw"},
		{name: "bucket only", source: "s3://data", wantBucket: "data", wantPrefix: ""},
		{name: "trailing slash trimmed", source: "s3://data/sherlock/", wantBucket: "data", wantPrefix: "sherlock"},
		{name: "local path is not remote", source: "/local/sherlock", wantErr: true},
		{name: "missing bucket", source: "s3:///prefix", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bucket, prefix, err := tt.source.BucketPrefix()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bucket != tt.wantBucket || prefix != tt.wantPrefix {
				t.Errorf("BucketPrefix() = (%q, %q), want (%q, %q)", bucket, prefix, tt.wantBucket, tt.wantPrefix)
			}
		})
	}
}

func TestChannelSourceIsRemote(t *testing.T) {
	t.Parallel()

	if !ChannelSource("s3://bucket/x").IsRemote() {
		t.Error("s3 URI should be remote")
	}
	if ChannelSource("/local/path").IsRemote() {
		t.Error("local path should not be remote")
	}
}
