// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    map[string]string
		wantErr bool
	}{
		{
			name:    "simple assignments",
			content: "FOO=bar\nBAZ=qux\n",
			want:    map[string]string{"FOO": "bar", "BAZ": "qux"},
		},
		{
			name:    "comments and blank lines",
			content: "# comment\n\nFOO=bar\n",
			want:    map[string]string{"FOO": "bar"},
		},
		{
			name:    "export prefix",
			content: "export FOO=bar\n",
			want:    map[string]string{"FOO": "bar"},
		},
		{
			name:    "double quoted with escapes",
			content: `FOO="line1\nline2"`,
			want:    map[string]string{"FOO": "line1\nline2"},
		},
		{
			name:    "single quoted literal",
			content: `FOO='a\nb'`,
			want:    map[string]string{"FOO": `a\nb`},
		},
		{
			name:    "empty value",
			content: "FOO=\n",
			want:    map[string]string{"FOO": ""},
		},
		{
			name:    "inline comment stripped",
			content: "FOO=bar # trailing\n",
			want:    map[string]string{"FOO": "bar"},
		},
		{
			name:    "missing equals",
			content: "JUSTAKEY\n",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			content: `FOO="oops`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := make(map[string]string)
			err := ParseEnvFile(env, []byte(tt.content), "test.env")
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEnvFile() error: %v", err)
			}
			for k, v := range tt.want {
				if env[k] != v {
					t.Errorf("env[%q] = %q, want %q", k, env[k], v)
				}
			}
		})
	}
}

func TestLoadEnvFileOptional(t *testing.T) {
	t.Parallel()

	env := map[string]string{"KEEP": "1"}
	if err := LoadEnvFile(env, "missing.env?", t.TempDir()); err != nil {
		t.Errorf("optional missing file returned error: %v", err)
	}
	if err := LoadEnvFile(env, "missing.env", t.TempDir()); err == nil {
		t.Error("required missing file returned nil error")
	}
	if env["KEEP"] != "1" {
		t.Error("existing entries were disturbed")
	}
}

func TestLoadEnvFileRelativeToBase(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "job.env"), []byte("FROM_FILE=yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := make(map[string]string)
	if err := LoadEnvFile(env, "job.env", base); err != nil {
		t.Fatalf("LoadEnvFile() error: %v", err)
	}
	if env["FROM_FILE"] != "yes" {
		t.Errorf("FROM_FILE = %q", env["FROM_FILE"])
	}
}

func TestLoadEnvFileFromCwd(t *testing.T) {
	t.Parallel()

	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, "run.env"), []byte("RUNTIME=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := make(map[string]string)
	if err := LoadEnvFileFromCwd(env, "run.env", cwd); err != nil {
		t.Fatalf("LoadEnvFileFromCwd() error: %v", err)
	}
	if env["RUNTIME"] != "1" {
		t.Errorf("RUNTIME = %q", env["RUNTIME"])
	}
}
