// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"smlaunch-cli/internal/contract"
	"smlaunch-cli/pkg/jobfile"
)

func testContext(t *testing.T, entryPoint, script string) *ExecutionContext {
	t.Helper()

	layout := contract.NewLayout(filepath.Join(t.TempDir(), "job"))
	if err := layout.Materialize(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(layout.CodeDir(), entryPoint), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	return &ExecutionContext{
		Job:        &jobfile.Job{Name: "test-job", EntryPoint: entryPoint},
		Layout:     layout,
		EnvBuilder: &MockEnvBuilder{Env: map[string]string{"PATH": os.Getenv("PATH")}},
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no shell available")
	}
}

func TestShellRuntimeExecute(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx := testContext(t, "train.sh", "echo running; exit 0\n")
	var stdout bytes.Buffer
	ctx.Stdout = &stdout

	res := NewShellRuntime().Execute(ctx)
	if !res.Success() {
		t.Fatalf("Execute() = %+v, want success", res)
	}
	if got := stdout.String(); got != "running\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestShellRuntimeExitCodePropagation(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx := testContext(t, "train.sh", "exit 7\n")
	res := NewShellRuntime().Execute(ctx)

	// A non-zero child exit is a job failure, not a launcher error.
	if res.Error != nil {
		t.Errorf("unexpected launcher error: %v", res.Error)
	}
	if res.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", res.ExitCode)
	}
}

func TestShellRuntimeArgsAndEnv(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx := testContext(t, "train.sh", "echo \"$1 $2 $SM_MODEL_DIR\"\n")
	ctx.Args = []string{"--epochs", "4"}
	ctx.EnvBuilder = &MockEnvBuilder{Env: map[string]string{
		"PATH":         os.Getenv("PATH"),
		"SM_MODEL_DIR": "/opt/ml/model",
	}}
	var stdout bytes.Buffer
	ctx.Stdout = &stdout

	res := NewShellRuntime().Execute(ctx)
	if !res.Success() {
		t.Fatalf("Execute() = %+v", res)
	}
	if got := stdout.String(); got != "--epochs 4 /opt/ml/model\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestShellRuntimeValidateMissingEntryPoint(t *testing.T) {
	t.Parallel()

	ctx := testContext(t, "train.sh", "")
	ctx.Job.EntryPoint = "absent.sh"
	if err := NewShellRuntime().Validate(ctx); err == nil {
		t.Error("expected error for missing entry point")
	}
}

func TestInterpreterRuntimeCommand(t *testing.T) {
	t.Parallel()

	ctx := testContext(t, "train.py", "print('hi')\n")
	ctx.Args = []string{"--num_epochs", "2"}

	rt := NewInterpreterRuntime("python3")
	prepared, err := rt.PrepareInteractive(ctx)
	if err != nil {
		t.Fatalf("PrepareInteractive() error: %v", err)
	}

	// The entry point runs as a module from the code dir so its sibling
	// imports resolve.
	want := []string{"-m", "train", "--num_epochs", "2"}
	got := prepared.Cmd.Args[1:]
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if prepared.Cmd.Dir != ctx.Layout.CodeDir() {
		t.Errorf("working dir = %q, want code dir", prepared.Cmd.Dir)
	}
}

func TestInterpreterRuntimeAvailable(t *testing.T) {
	t.Parallel()

	if (&InterpreterRuntime{}).Available() {
		t.Error("empty interpreter reported available")
	}
	if (&InterpreterRuntime{Interpreter: "definitely-not-a-real-binary"}).Available() {
		t.Error("nonexistent interpreter reported available")
	}
}

func TestRegistryDispatch(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry("python3")

	rt, err := reg.ForJob(&jobfile.Job{EntryPoint: "train.py"})
	if err != nil || rt.Name() != "interpreter" {
		t.Errorf("ForJob(.py) = %v, %v", rt, err)
	}
	rt, err = reg.ForJob(&jobfile.Job{EntryPoint: "run.sh"})
	if err != nil || rt.Name() != "shell" {
		t.Errorf("ForJob(.sh) = %v, %v", rt, err)
	}
	if _, err := reg.ForJob(&jobfile.Job{EntryPoint: "train.rb"}); err == nil {
		t.Error("expected error for unregistered extension")
	}
}

func TestRegistryExecuteValidationFailure(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx := testContext(t, "train.sh", "")
	ctx.Job.EntryPoint = "absent.sh"

	res := DefaultRegistry("python3").Execute(ctx)
	if res.Error == nil {
		t.Error("expected validation error")
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
}

func TestResultSuccess(t *testing.T) {
	t.Parallel()

	if !(NewSuccessResult()).Success() {
		t.Error("success result not successful")
	}
	if (NewExitCodeResult(2)).Success() {
		t.Error("non-zero exit reported success")
	}
}
