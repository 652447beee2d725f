// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	"smlaunch-cli/internal/config"
	"smlaunch-cli/internal/contract"
	"smlaunch-cli/internal/issue"
	"smlaunch-cli/internal/provision"
	"smlaunch-cli/internal/runtime"
	"smlaunch-cli/internal/staging"
	"smlaunch-cli/internal/workspace"
	"smlaunch-cli/pkg/jobfile"
)

type (
	// Orchestrator runs the launch pipeline. Collaborators are fields so
	// tests can substitute fakes; NewOrchestrator wires the production set.
	Orchestrator struct {
		Config *config.Config

		// Stager materializes channels and collects artifacts.
		Stager *staging.Stager

		// NewProvisioner builds the provisioner for one launch given the
		// resolved interpreter.
		NewProvisioner func(interpreter string, opts Options) *provision.Provisioner

		// NewRegistry builds the runtime registry for one launch given the
		// resolved interpreter.
		NewRegistry func(interpreter string) *runtime.Registry

		// Logger reports per-phase progress. May be nil.
		Logger *log.Logger
	}

	// Result is the outcome of one launch. A non-zero ExitCode with a nil
	// launcher error is a job failure; the exit code and the streamed output
	// are the diagnostics.
	Result struct {
		// JobName is the unique launch identifier.
		JobName string

		// WorkspaceRoot is the execution root. Only valid when Kept is true.
		WorkspaceRoot string

		// Kept reports whether the workspace was retained.
		Kept bool

		// ExitCode is the entry point's exit status.
		ExitCode runtime.ExitCode

		// ArtifactCount is the number of uploaded artifact objects.
		ArtifactCount int
	}

	// Plan is the derived contract for a job, produced without executing it.
	Plan struct {
		// Args is the full derived argument vector.
		Args []string

		// Env is the derived contract environment.
		Env map[string]string
	}
)

// NewOrchestrator wires the production pipeline from configuration.
func NewOrchestrator(cfg *config.Config, logger *log.Logger) (*Orchestrator, error) {
	stager := &staging.Stager{}
	if cfg.ObjectStore.IsConfigured() {
		store, err := staging.NewMinIOStore(staging.StoreConfig{
			Endpoint:  cfg.ObjectStore.Endpoint,
			AccessKey: cfg.ObjectStore.AccessKey,
			SecretKey: cfg.ObjectStore.SecretKey,
			Region:    cfg.ObjectStore.Region,
			UseSSL:    cfg.ObjectStore.UseSSL,
		})
		if err != nil {
			return nil, issue.WrapWithOperation(err, "connect object store")
		}
		stager.Store = store
	}

	return &Orchestrator{
		Config: cfg,
		Stager: stager,
		NewProvisioner: func(interpreter string, opts Options) *provision.Provisioner {
			return &provision.Provisioner{
				Pip:    &provision.ExecPipRunner{Interpreter: interpreter, Stdout: opts.Stdout, Stderr: opts.Stderr},
				Stdout: opts.Stdout,
				Stderr: opts.Stderr,
				Logger: logger,
			}
		},
		NewRegistry: runtime.DefaultRegistry,
		Logger:      logger,
	}, nil
}

// Launch runs the whole pipeline for one job. Launcher failures return an
// error; a job that ran and exited non-zero returns a Result with the exit
// code and no error.
func (o *Orchestrator) Launch(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	job := opts.Job

	sourceDir := job.ResolveSourceDir()
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return nil, issue.NewErrorContext().
			WithOperation("read source directory").
			WithResource(sourceDir).
			WithSuggestion("Check the source_dir value in the job file").
			Wrap(fmt.Errorf("not a readable directory")).
			BuildError()
	}

	template := job.GetTemplate()
	interpreter := o.interpreterFor(template)

	ws, err := workspace.New(o.workspaceBase(), job.Name)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "create workspace")
	}
	o.logf("workspace created", "job", ws.JobName(), "root", ws.Root())

	kept := opts.Keep || o.Config.KeepWorkspace
	defer func() {
		if !kept {
			_ = ws.Remove()
		}
	}()

	layout := ws.Layout()

	// Package the source directory.
	if err := staging.CopyTree(sourceDir, layout.CodeDir()); err != nil {
		return nil, issue.WrapWithContext(err, "package source directory", sourceDir)
	}
	if _, err := os.Stat(filepath.Join(layout.CodeDir(), job.EntryPoint)); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("locate entry point").
			WithResource(job.EntryPoint).
			WithSuggestion("The entry point must exist inside source_dir").
			Wrap(err).
			BuildError()
	}

	// Install declared dependencies before anything in the directory runs.
	o.logf("provisioning source directory")
	if _, err := o.NewProvisioner(interpreter, opts).Install(ctx, layout.CodeDir()); err != nil {
		if errors.Is(err, provision.ErrHookFailed) {
			return nil, issue.WrapWithOperation(err, "run build hook")
		}
		return nil, issue.WrapWithOperation(err, "install dependencies")
	}

	// Materialize channels.
	o.logf("staging channels", "count", len(job.Channels))
	channelDirs, err := o.Stager.Stage(ctx, job.Channels, layout)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "stage channels")
	}

	// Derive the contract.
	args, err := contract.DeriveArgs(job.Hyperparameters)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "derive arguments")
	}
	resources := contract.DetectResources()
	env, err := contract.DeriveEnv(contract.EnvInputs{
		Layout:      layout,
		Job:         job,
		JobName:     ws.JobName(),
		Template:    template,
		ChannelDirs: channelDirs,
		UserArgs:    args,
		Resources:   resources,
	})
	if err != nil {
		return nil, issue.WrapWithOperation(err, "derive environment")
	}

	if err := writeInputConfig(layout, job, resources); err != nil {
		return nil, issue.WrapWithOperation(err, "write input configuration")
	}

	// Execute.
	execCtx := &runtime.ExecutionContext{
		Job:             job,
		Layout:          layout,
		Context:         ctx,
		ContractEnv:     env,
		Args:            args,
		Stdout:          opts.Stdout,
		Stderr:          opts.Stderr,
		Stdin:           opts.Stdin,
		RuntimeEnvFiles: opts.EnvFiles,
		RuntimeEnvVars:  opts.EnvVars,
		Cwd:             opts.Cwd,
	}

	registry := o.NewRegistry(interpreter)
	o.logf("starting entry point", "entry_point", job.EntryPoint, "args", len(args))
	execResult := o.execute(registry, execCtx, opts.Interactive)
	if execResult.Error != nil {
		return nil, issue.WrapWithContext(execResult.Error, "execute entry point", job.EntryPoint)
	}

	result := &Result{
		JobName:       ws.JobName(),
		WorkspaceRoot: ws.Root(),
		Kept:          kept,
		ExitCode:      execResult.ExitCode,
	}

	if execResult.Success() && opts.UploadArtifacts {
		prefix := path.Join(o.Config.Artifacts.Prefix, job.Name, ws.JobName())
		count, err := o.Stager.CollectArtifacts(ctx, layout, o.Config.Artifacts.Bucket, prefix)
		if err != nil {
			return nil, issue.WrapWithOperation(err, "upload artifacts")
		}
		o.logf("artifacts uploaded", "bucket", o.Config.Artifacts.Bucket, "objects", count)
		result.ArtifactCount = count
	}

	o.logf("launch finished", "job", ws.JobName(), "exit_code", execResult.ExitCode)
	return result, nil
}

// Derive computes the contract for a job without creating a workspace or
// executing anything. Channel paths are the ones a launch would materialize
// under the given preview root.
func (o *Orchestrator) Derive(job *jobfile.Job) (*Plan, error) {
	if errs := job.Validate(); errs != nil {
		return nil, errs
	}

	layout := contract.NewLayout(filepath.Join(o.workspaceBase(), job.Name+"-preview"))
	channelDirs := make(map[jobfile.ChannelName]string, len(job.Channels))
	for name := range job.Channels {
		channelDirs[name] = layout.ChannelDir(name)
	}

	args, err := contract.DeriveArgs(job.Hyperparameters)
	if err != nil {
		return nil, err
	}
	env, err := contract.DeriveEnv(contract.EnvInputs{
		Layout:      layout,
		Job:         job,
		JobName:     job.Name + "-preview",
		Template:    job.GetTemplate(),
		ChannelDirs: channelDirs,
		UserArgs:    args,
		Resources:   contract.DetectResources(),
	})
	if err != nil {
		return nil, err
	}

	return &Plan{Args: args, Env: env}, nil
}

func (o *Orchestrator) execute(registry *runtime.Registry, execCtx *runtime.ExecutionContext, interactive bool) *runtime.Result {
	if interactive {
		rt, err := registry.ForJob(execCtx.Job)
		if err != nil {
			return runtime.NewErrorResult(1, err)
		}
		ir := runtime.GetInteractiveRuntime(rt)
		if ir == nil {
			return runtime.NewErrorResult(1, fmt.Errorf("runtime %q does not support interactive mode", rt.Name()))
		}
		prepared, err := ir.PrepareInteractive(execCtx)
		if err != nil {
			return runtime.NewErrorResult(1, err)
		}
		return runtime.RunInteractive(prepared)
	}
	return registry.Execute(execCtx)
}

func (o *Orchestrator) interpreterFor(template *jobfile.Template) string {
	if template.Interpreter != "" {
		return template.Interpreter
	}
	return o.Config.Interpreter
}

func (o *Orchestrator) workspaceBase() string {
	if o.Config.WorkspaceDir != "" {
		return o.Config.WorkspaceDir
	}
	return filepath.Join(os.TempDir(), config.AppName)
}

func (o *Orchestrator) logf(msg string, kv ...any) {
	if o.Logger != nil {
		o.Logger.Info(msg, kv...)
	}
}
