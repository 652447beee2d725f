// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"smlaunch-cli/internal/contract"
	"smlaunch-cli/pkg/jobfile"
)

type (
	// ExecutionContext contains everything needed to execute one entry point.
	ExecutionContext struct {
		// Job is the parsed job definition.
		Job *jobfile.Job

		// Layout is the materialized workspace the job runs in. The entry
		// point executes from Layout.CodeDir().
		Layout contract.Layout

		// Context is the Go context for cancellation.
		Context context.Context

		// ContractEnv holds the derived SM_* variables.
		ContractEnv map[string]string

		// Args are the hyperparameter-derived command line tokens, already in
		// their final order.
		Args []string

		// Stdout, Stderr and Stdin are attached to the child process.
		Stdout io.Writer
		Stderr io.Writer
		Stdin  io.Reader

		// RuntimeEnvFiles are dotenv paths from the --env-file flag, resolved
		// relative to Cwd. Loaded after every other env source except
		// RuntimeEnvVars.
		RuntimeEnvFiles []string

		// RuntimeEnvVars are --env-var flag values. Highest precedence.
		RuntimeEnvVars map[string]string

		// Cwd is where the launcher was invoked; used to resolve
		// RuntimeEnvFiles. Empty means os.Getwd at load time.
		Cwd string

		// EnvBuilder builds the child environment. Nil selects the default
		// precedence chain.
		EnvBuilder EnvBuilder
	}

	// Result contains the outcome of one execution.
	Result struct {
		// ExitCode is the child's exit status. Non-zero with a nil Error is a
		// normal job failure, not a launcher failure.
		ExitCode ExitCode

		// Error is set for infrastructure failures (spawn, environment).
		Error error

		// Output and ErrOutput hold captured stdout/stderr when the runtime
		// ran in capture mode; empty when output was streamed.
		Output    string
		ErrOutput string
	}

	// Runtime executes an entry point of one kind.
	Runtime interface {
		// Name returns the runtime name.
		Name() string

		// Available reports whether this runtime can run on this host.
		Available() bool

		// Validate checks the context before execution; failures here abort
		// the launch before the child starts.
		Validate(ctx *ExecutionContext) error

		// Execute runs the entry point, streaming output to the context
		// writers, and blocks until it exits.
		Execute(ctx *ExecutionContext) *Result
	}

	// InteractiveRuntime is implemented by runtimes that can hand their
	// command to a PTY.
	InteractiveRuntime interface {
		Runtime

		// SupportsInteractive reports whether PTY attachment works here.
		SupportsInteractive() bool

		// PrepareInteractive returns a command ready for PTY attachment. The
		// caller runs it and must call Cleanup afterwards when non-nil.
		PrepareInteractive(ctx *ExecutionContext) (*PreparedCommand, error)
	}

	// PreparedCommand is an exec.Cmd ready to start plus any cleanup.
	PreparedCommand struct {
		Cmd     *exec.Cmd
		Cleanup func()
	}

	// Registry maps entry-point extensions to runtimes.
	Registry struct {
		runtimes map[string]Runtime
	}
)

// Success reports whether execution completed with exit code 0 and no error.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// GetInteractiveRuntime returns rt as an InteractiveRuntime when it supports
// interactive mode, nil otherwise.
func GetInteractiveRuntime(rt Runtime) InteractiveRuntime {
	if ir, ok := rt.(InteractiveRuntime); ok && ir.SupportsInteractive() {
		return ir
	}
	return nil
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{runtimes: make(map[string]Runtime)}
}

// DefaultRegistry builds the standard registry for the given interpreter.
func DefaultRegistry(interpreter string) *Registry {
	r := NewRegistry()
	r.Register(".py", NewInterpreterRuntime(interpreter))
	r.Register(".sh", NewShellRuntime())
	return r
}

// Register maps an entry-point extension (with leading dot) to a runtime.
func (r *Registry) Register(ext string, rt Runtime) {
	r.runtimes[ext] = rt
}

// ForJob returns the runtime handling the job's entry-point extension.
func (r *Registry) ForJob(job *jobfile.Job) (Runtime, error) {
	ext := job.EntryPointExt()
	rt, ok := r.runtimes[ext]
	if !ok {
		return nil, fmt.Errorf("no runtime registered for entry point extension %q", ext)
	}
	return rt, nil
}

// Execute validates and runs the job's entry point with the matching runtime.
func (r *Registry) Execute(ctx *ExecutionContext) *Result {
	rt, err := r.ForJob(ctx.Job)
	if err != nil {
		return NewErrorResult(1, err)
	}
	if !rt.Available() {
		return NewErrorResult(1, fmt.Errorf("runtime %q is not available on this system", rt.Name()))
	}
	if err := rt.Validate(ctx); err != nil {
		return NewErrorResult(1, err)
	}
	return rt.Execute(ctx)
}

// EnvToSlice converts an environment map to "KEY=VALUE" form.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}

// runCommand starts cmd and maps its outcome to a Result. A non-zero exit is
// reported through the exit code, not as an error.
func runCommand(cmd *exec.Cmd) *Result {
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(1, fmt.Errorf("failed to start entry point: %w", err))
	}
	return NewSuccessResult()
}

func execContext(ctx *ExecutionContext) context.Context {
	if ctx.Context != nil {
		return ctx.Context
	}
	return context.Background()
}

// buildChildEnv runs the configured env builder and combines the result with
// the filtered host environment.
func buildChildEnv(ctx *ExecutionContext) ([]string, error) {
	builder := ctx.EnvBuilder
	if builder == nil {
		builder = NewDefaultEnvBuilder()
	}
	env, err := builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build environment: %w", err)
	}
	return EnvToSlice(env), nil
}

func entryPointPath(ctx *ExecutionContext) string {
	return filepath.Join(ctx.Layout.CodeDir(), ctx.Job.EntryPoint)
}
