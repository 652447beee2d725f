// SPDX-License-Identifier: MPL-2.0

package contract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLayoutPaths(t *testing.T) {
	t.Parallel()

	l := NewLayout("/work/job-1")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"DataDir", l.DataDir(), filepath.Join("/work/job-1", "input", "data")},
		{"ChannelDir", l.ChannelDir("training"), filepath.Join("/work/job-1", "input", "data", "training")},
		{"ModelDir", l.ModelDir(), filepath.Join("/work/job-1", "model")},
		{"OutputDataDir", l.OutputDataDir(), filepath.Join("/work/job-1", "output", "data")},
		{"CodeDir", l.CodeDir(), filepath.Join("/work/job-1", "code")},
		{"InputConfigDir", l.InputConfigDir(), filepath.Join("/work/job-1", "input", "config")},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestLayoutChannelDirsDistinct(t *testing.T) {
	t.Parallel()

	l := NewLayout("/work/job-1")
	if l.ChannelDir("training") == l.ChannelDir("validation") {
		t.Error("distinct channels must map to distinct directories")
	}
}

func TestLayoutMaterialize(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "job")
	l := NewLayout(root)
	if err := l.Materialize(); err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}

	for _, dir := range []string{l.InputConfigDir(), l.DataDir(), l.ModelDir(), l.OutputDataDir(), l.CodeDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("missing directory %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}
