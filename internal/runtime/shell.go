// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"os/exec"
)

// ShellRuntime runs a .sh entry point through the system shell from the code
// directory.
type ShellRuntime struct {
	// Shell overrides shell discovery when set.
	Shell string
}

// NewShellRuntime creates a shell runtime with default discovery.
func NewShellRuntime() *ShellRuntime {
	return &ShellRuntime{}
}

// Name returns the runtime name.
func (r *ShellRuntime) Name() string {
	return "shell"
}

// Available reports whether a usable shell was found.
func (r *ShellRuntime) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Validate checks that the packaged entry point exists.
func (r *ShellRuntime) Validate(ctx *ExecutionContext) error {
	if ctx.Job == nil {
		return fmt.Errorf("no job selected for execution")
	}
	if _, err := os.Stat(entryPointPath(ctx)); err != nil {
		return fmt.Errorf("entry point %s not found in code directory: %w", ctx.Job.EntryPoint, err)
	}
	return nil
}

// Execute runs the script and blocks until it exits.
func (r *ShellRuntime) Execute(ctx *ExecutionContext) *Result {
	cmd, err := r.buildCommand(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	cmd.Stdin = ctx.Stdin
	return runCommand(cmd)
}

// SupportsInteractive reports whether PTY attachment is possible on this host.
func (r *ShellRuntime) SupportsInteractive() bool {
	return interactiveSupported
}

// PrepareInteractive returns the script invocation ready for PTY attachment.
func (r *ShellRuntime) PrepareInteractive(ctx *ExecutionContext) (*PreparedCommand, error) {
	if err := r.Validate(ctx); err != nil {
		return nil, err
	}
	cmd, err := r.buildCommand(ctx)
	if err != nil {
		return nil, err
	}
	return &PreparedCommand{Cmd: cmd}, nil
}

func (r *ShellRuntime) buildCommand(ctx *ExecutionContext) (*exec.Cmd, error) {
	shell, err := r.getShell()
	if err != nil {
		return nil, err
	}

	env, err := buildChildEnv(ctx)
	if err != nil {
		return nil, err
	}

	args := append([]string{entryPointPath(ctx)}, ctx.Args...)
	cmd := exec.CommandContext(execContext(ctx), shell, args...)
	cmd.Dir = ctx.Layout.CodeDir()
	cmd.Env = env
	return cmd, nil
}

func (r *ShellRuntime) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}
	if bash, err := exec.LookPath("bash"); err == nil {
		return bash, nil
	}
	if sh, err := exec.LookPath("sh"); err == nil {
		return sh, nil
	}
	return "", fmt.Errorf("no shell found")
}
