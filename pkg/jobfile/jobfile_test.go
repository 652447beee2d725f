// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	"os"
	"path/filepath"
	"testing"
)

const validJob = `
name:        "sherlock-rnn"
entry_point: "train.py"
source_dir:  "./src"

hyperparameters: {
	num_epochs: 1
	data_dir:   "/opt/ml/input/data/training"
	save_dir:   "/opt/ml/model"
}

channels: {
	training: "/local/sherlock"
}

env: {
	vars: {
		SM_LOG_SUPPRESS: "1"
	}
}
`

func TestParseBytes(t *testing.T) {
	t.Parallel()

	job, err := ParseBytes([]byte(validJob), "smjob.cue")
	if err != nil {
		t.Fatalf("ParseBytes() error: %v", err)
	}

	if job.Name != "sherlock-rnn" {
		t.Errorf("Name = %q, want %q", job.Name, "sherlock-rnn")
	}
	if job.EntryPoint != "train.py" {
		t.Errorf("EntryPoint = %q, want %q", job.EntryPoint, "train.py")
	}
	if got := job.ModuleName(); got != "train" {
		t.Errorf("ModuleName() = %q, want %q", got, "train")
	}
	if len(job.Hyperparameters) != 3 {
		t.Errorf("len(Hyperparameters) = %d, want 3", len(job.Hyperparameters))
	}
	if src, ok := job.Channels["training"]; !ok || src != "/local/sherlock" {
		t.Errorf("Channels[training] = %q, want %q", src, "/local/sherlock")
	}
	if job.Env.GetVars()["SM_LOG_SUPPRESS"] != "1" {
		t.Errorf("env var SM_LOG_SUPPRESS not decoded: %v", job.Env.GetVars())
	}
}

func TestParseBytesRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing entry point",
			data: `name: "a", source_dir: "./src"`,
		},
		{
			name: "uppercase job name",
			data: `name: "Sherlock", entry_point: "train.py", source_dir: "./src"`,
		},
		{
			name: "uppercase channel name",
			data: `name: "a", entry_point: "t.py", source_dir: "./src", channels: Training: "/data"`,
		},
		{
			name: "struct hyperparameter value",
			data: `name: "a", entry_point: "t.py", source_dir: "./src", hyperparameters: lr: {x: 1}`,
		},
		{
			name: "absolute entry point",
			data: `name: "a", entry_point: "/etc/train.py", source_dir: "./src"`,
		},
		{
			name: "entry point escaping source dir",
			data: `name: "a", entry_point: "../train.py", source_dir: "./src"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseBytes([]byte(tt.data), "smjob.cue"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseReadsFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte(validJob), 0o644); err != nil {
		t.Fatal(err)
	}

	job, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if job.FilePath != path {
		t.Errorf("FilePath = %q, want %q", job.FilePath, path)
	}

	// Relative source dirs resolve against the job file location.
	want := filepath.Join(dir, "src")
	if got := job.ResolveSourceDir(); got != want {
		t.Errorf("ResolveSourceDir() = %q, want %q", got, want)
	}
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Parse(filepath.Join(t.TempDir(), "nope.cue")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestModuleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entryPoint string
		want       string
	}{
		{"train.py", "train"},
		{"train_c.py", "train_c"},
		{"run.sh", "run"},
		{"nested/train.py", "train"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}

	for _, tt := range tests {
		j := &Job{EntryPoint: tt.entryPoint}
		if got := j.ModuleName(); got != tt.want {
			t.Errorf("ModuleName(%q) = %q, want %q", tt.entryPoint, got, tt.want)
		}
	}
}
