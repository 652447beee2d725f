// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		files     map[string]string
		isPackage bool
		hasReqs   bool
		hasHook   bool
	}{
		{
			name:  "flat script directory",
			files: map[string]string{"train.py": ""},
		},
		{
			name:    "requirements only",
			files:   map[string]string{"train.py": "", "requirements.txt": "numpy\n"},
			hasReqs: true,
		},
		{
			name:      "pyproject package",
			files:     map[string]string{"pyproject.toml": "[project]\nname = \"x\"\n"},
			isPackage: true,
		},
		{
			name:      "setup.py package",
			files:     map[string]string{"setup.py": ""},
			isPackage: true,
		},
		{
			name:    "hook only",
			files:   map[string]string{"setup.sh": "true"},
			hasHook: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := Detect(writeSource(t, tt.files))
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if m.IsPackage() != tt.isPackage {
				t.Errorf("IsPackage() = %v, want %v", m.IsPackage(), tt.isPackage)
			}
			if m.HasRequirements != tt.hasReqs {
				t.Errorf("HasRequirements = %v, want %v", m.HasRequirements, tt.hasReqs)
			}
			if m.HasHook != tt.hasHook {
				t.Errorf("HasHook = %v, want %v", m.HasHook, tt.hasHook)
			}
		})
	}
}

func TestDetectMissingDir(t *testing.T) {
	t.Parallel()

	if _, err := Detect("/no/such/dir"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestReadPyproject(t *testing.T) {
	t.Parallel()

	dir := writeSource(t, map[string]string{
		"pyproject.toml": `
[project]
name = "sherlock-rnn"
dependencies = ["torch>=1.1", "numpy"]

[build-system]
requires = ["setuptools>=61", "wheel"]
`,
	})

	m, err := Detect(dir)
	if err != nil {
		t.Fatal(err)
	}
	p, err := m.ReadPyproject()
	if err != nil {
		t.Fatalf("ReadPyproject() error: %v", err)
	}
	if p.Project.Name != "sherlock-rnn" {
		t.Errorf("project name = %q", p.Project.Name)
	}
	if len(p.Project.Dependencies) != 2 {
		t.Errorf("dependencies = %v", p.Project.Dependencies)
	}
	if len(p.BuildSystem.Requires) != 2 {
		t.Errorf("build-system requires = %v", p.BuildSystem.Requires)
	}
}

func TestReadPyprojectInvalid(t *testing.T) {
	t.Parallel()

	dir := writeSource(t, map[string]string{"pyproject.toml": "not [ toml"})
	m := Manifest{SourceDir: dir, HasPyproject: true}
	if _, err := m.ReadPyproject(); err == nil {
		t.Error("expected parse error, got nil")
	}
}
