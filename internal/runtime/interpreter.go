// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"os/exec"
)

// InterpreterRuntime runs a python entry point as a module from the code
// directory: `<interpreter> -m <module> <args...>`. Running as a module
// rather than by path keeps the script's own imports resolvable against the
// packaged source tree.
type InterpreterRuntime struct {
	// Interpreter is the python executable name or path.
	Interpreter string
}

// NewInterpreterRuntime creates a runtime for the given interpreter.
func NewInterpreterRuntime(interpreter string) *InterpreterRuntime {
	return &InterpreterRuntime{Interpreter: interpreter}
}

// Name returns the runtime name.
func (r *InterpreterRuntime) Name() string {
	return "interpreter"
}

// Available reports whether the interpreter resolves on PATH.
func (r *InterpreterRuntime) Available() bool {
	if r.Interpreter == "" {
		return false
	}
	_, err := exec.LookPath(r.Interpreter)
	return err == nil
}

// Validate checks that the packaged entry point exists before spawning.
func (r *InterpreterRuntime) Validate(ctx *ExecutionContext) error {
	if ctx.Job == nil {
		return fmt.Errorf("no job selected for execution")
	}
	if ctx.Job.ModuleName() == "" {
		return fmt.Errorf("entry point %q does not map to a module name", ctx.Job.EntryPoint)
	}
	if _, err := os.Stat(entryPointPath(ctx)); err != nil {
		return fmt.Errorf("entry point %s not found in code directory: %w", ctx.Job.EntryPoint, err)
	}
	return nil
}

// Execute runs the module and blocks until it exits. Output streams to the
// context writers as the child produces it.
func (r *InterpreterRuntime) Execute(ctx *ExecutionContext) *Result {
	cmd, err := r.buildCommand(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	cmd.Stdin = ctx.Stdin
	return runCommand(cmd)
}

// SupportsInteractive returns true; the interpreter process attaches to a PTY
// like any other child.
func (r *InterpreterRuntime) SupportsInteractive() bool {
	return interactiveSupported
}

// PrepareInteractive returns the module invocation ready for PTY attachment.
func (r *InterpreterRuntime) PrepareInteractive(ctx *ExecutionContext) (*PreparedCommand, error) {
	if err := r.Validate(ctx); err != nil {
		return nil, err
	}
	cmd, err := r.buildCommand(ctx)
	if err != nil {
		return nil, err
	}
	return &PreparedCommand{Cmd: cmd}, nil
}

func (r *InterpreterRuntime) buildCommand(ctx *ExecutionContext) (*exec.Cmd, error) {
	env, err := buildChildEnv(ctx)
	if err != nil {
		return nil, err
	}

	args := append([]string{"-m", ctx.Job.ModuleName()}, ctx.Args...)
	cmd := exec.CommandContext(execContext(ctx), r.Interpreter, args...)
	cmd.Dir = ctx.Layout.CodeDir()
	cmd.Env = env
	return cmd, nil
}
