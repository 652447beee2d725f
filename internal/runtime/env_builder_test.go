// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"smlaunch-cli/pkg/jobfile"
)

func TestEnvBuilderPrecedence(t *testing.T) {
	t.Parallel()

	jobDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(jobDir, "train.env"), []byte("FROM_FILE=file\nSHARED=file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, "cli.env"), []byte("SHARED=cli-file\nCLI_FILE=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := &ExecutionContext{
		Job: &jobfile.Job{
			FilePath: filepath.Join(jobDir, "smjob.cue"),
			Env: &jobfile.EnvConfig{
				Files: []jobfile.DotenvFilePath{"train.env"},
				Vars:  map[jobfile.EnvVarName]string{"FROM_VARS": "vars", "SHARED": "vars"},
			},
		},
		ContractEnv: map[string]string{
			"SM_MODEL_DIR": "/opt/ml/model",
			"SHARED":       "contract",
		},
		RuntimeEnvFiles: []string{"cli.env"},
		RuntimeEnvVars:  map[string]string{"SHARED": "cli-var"},
		Cwd:             cwd,
	}

	builder := &DefaultEnvBuilder{
		Environ: func() []string {
			return []string{"HOST=1", "SHARED=host", "SM_CHANNEL_STALE=/old"}
		},
	}

	env, err := builder.Build(ctx)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// Each level overrides the one below it; the flag value wins overall.
	if env["SHARED"] != "cli-var" {
		t.Errorf("SHARED = %q, want cli-var", env["SHARED"])
	}
	if env["HOST"] != "1" {
		t.Error("host environment not inherited")
	}
	if env["SM_MODEL_DIR"] != "/opt/ml/model" {
		t.Error("contract variables missing")
	}
	if env["FROM_FILE"] != "file" || env["FROM_VARS"] != "vars" || env["CLI_FILE"] != "1" {
		t.Errorf("intermediate levels missing: %v", env)
	}
	if _, ok := env["SM_CHANNEL_STALE"]; ok {
		t.Error("stale SM_* variable inherited from host")
	}
}

func TestEnvBuilderVarsOverrideFiles(t *testing.T) {
	t.Parallel()

	jobDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(jobDir, "a.env"), []byte("K=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	builder := &DefaultEnvBuilder{Environ: func() []string { return nil }}
	env, err := builder.Build(&ExecutionContext{
		Job: &jobfile.Job{
			FilePath: filepath.Join(jobDir, "smjob.cue"),
			Env: &jobfile.EnvConfig{
				Files: []jobfile.DotenvFilePath{"a.env"},
				Vars:  map[jobfile.EnvVarName]string{"K": "from-vars"},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if env["K"] != "from-vars" {
		t.Errorf("K = %q, want from-vars", env["K"])
	}
}

func TestEnvBuilderMissingRequiredFile(t *testing.T) {
	t.Parallel()

	builder := &DefaultEnvBuilder{Environ: func() []string { return nil }}
	_, err := builder.Build(&ExecutionContext{
		Job: &jobfile.Job{
			FilePath: filepath.Join(t.TempDir(), "smjob.cue"),
			Env:      &jobfile.EnvConfig{Files: []jobfile.DotenvFilePath{"absent.env"}},
		},
	})
	if err == nil {
		t.Error("expected error for missing required env file")
	}
}

func TestFilterContractEnvVars(t *testing.T) {
	t.Parallel()

	got := FilterContractEnvVars([]string{
		"PATH=/usr/bin",
		"SM_CHANNEL_TRAINING=/old",
		"SM_HPS={}",
		"SMELL=ok",
	})
	want := map[string]bool{"PATH=/usr/bin": true, "SMELL=ok": true}
	if len(got) != 2 {
		t.Fatalf("filtered to %v", got)
	}
	for _, e := range got {
		if !want[e] {
			t.Errorf("unexpected entry %q", e)
		}
	}
}
