// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"smlaunch-cli/internal/app/launch"
	"smlaunch-cli/internal/issue"
	"smlaunch-cli/internal/runtime"
	"smlaunch-cli/pkg/jobfile"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	runJobFile         string
	runHyperparameters []string
	runChannels        []string
	runEnvVars         []string
	runEnvFiles        []string
	runKeep            bool
	runUploadArtifacts bool

	// runCmd launches a training job
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Launch a training job",
		Long: `Launch a training job defined in a job file.

The launcher packages the source directory, installs its declared
dependencies, stages each channel, derives the script-mode command line
and environment, and executes the entry point, streaming its output.

The launcher's exit code mirrors the entry point's exit code.`,
		Example: `  smlaunch run
  smlaunch run -f jobs/mnist.cue
  smlaunch run -H num_epochs=5 -H lr=0.01
  smlaunch run --channel training=./data/train --keep`,
		RunE: runLaunch,
	}
)

func init() {
	runCmd.Flags().StringVarP(&runJobFile, "file", "f", "smjob.cue", "job file to launch")
	runCmd.Flags().StringArrayVarP(&runHyperparameters, "hyperparameter", "H", nil, "override a hyperparameter (key=value, repeatable)")
	runCmd.Flags().StringArrayVar(&runChannels, "channel", nil, "override a channel source (name=path-or-uri, repeatable)")
	runCmd.Flags().StringArrayVarP(&runEnvVars, "env-var", "e", nil, "set an environment variable for the entry point (KEY=VALUE, repeatable)")
	runCmd.Flags().StringArrayVar(&runEnvFiles, "env-file", nil, "load a dotenv file for the entry point (repeatable, suffix '?' for optional)")
	runCmd.Flags().BoolVarP(&runKeep, "keep", "k", false, "keep the workspace after the run")
	runCmd.Flags().BoolVarP(&runUploadArtifacts, "upload-artifacts", "u", false, "upload the model dir to the object store after a successful run")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	job, err := loadJob(runJobFile)
	if err != nil {
		return err
	}
	if err := applyOverrides(job, runHyperparameters, runChannels); err != nil {
		return err
	}

	envVars, err := parsePairs(runEnvVars)
	if err != nil {
		return fmt.Errorf("invalid --env-var: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	orch, err := launch.NewOrchestrator(cfg, logger)
	if err != nil {
		renderIssue(issue.ObjectStoreUnavailableId)
		return err
	}

	cwd, _ := os.Getwd()
	result, err := orch.Launch(ctx, launch.Options{
		Job:             job,
		EnvFiles:        runEnvFiles,
		EnvVars:         envVars,
		Cwd:             cwd,
		Interactive:     interactive,
		Keep:            runKeep,
		UploadArtifacts: runUploadArtifacts || cfg.Artifacts.Upload,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Stdin:           os.Stdin,
	})
	if err != nil {
		renderIssue(classifyLaunchError(err))
		fmt.Fprintf(os.Stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	if result.Kept {
		fmt.Fprintf(os.Stderr, "%s %s\n", SubtitleStyle.Render("Workspace kept at:"), CmdStyle.Render(result.WorkspaceRoot))
	}

	if !result.ExitCode.IsSuccess() {
		renderIssue(exitIssueFor(result.ExitCode))
		fmt.Fprintf(os.Stderr, "\n%s entry point exited with status %d\n", ErrorStyle.Render("Error:"), result.ExitCode)
		return &ExitError{Code: exitCodeFor(result.ExitCode)}
	}

	fmt.Fprintf(os.Stderr, "%s %s\n", SuccessStyle.Render("✓"), "Job "+result.JobName+" completed")
	return nil
}

// loadJob parses a job file, mapping the two failure shapes to their catalog
// entries: the file is missing, or it does not parse/validate.
func loadJob(path string) (*jobfile.Job, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			renderIssue(issue.JobfileNotFoundId)
		}
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	job, err := jobfile.Parse(path)
	if err != nil {
		renderIssue(issue.JobfileParseErrorId)
		return nil, err
	}
	return job, nil
}

// applyOverrides merges --hyperparameter and --channel flag values into the
// parsed job. Flag values win over the job file.
func applyOverrides(job *jobfile.Job, hyperparameters, channels []string) error {
	if len(hyperparameters) > 0 && job.Hyperparameters == nil {
		job.Hyperparameters = jobfile.Hyperparameters{}
	}
	for _, pair := range hyperparameters {
		key, value, err := splitPair(pair)
		if err != nil {
			return fmt.Errorf("invalid --hyperparameter: %w", err)
		}
		job.Hyperparameters[key] = value
	}

	if len(channels) > 0 && job.Channels == nil {
		job.Channels = make(map[jobfile.ChannelName]jobfile.ChannelSource)
	}
	for _, pair := range channels {
		name, source, err := splitPair(pair)
		if err != nil {
			return fmt.Errorf("invalid --channel: %w", err)
		}
		job.Channels[jobfile.ChannelName(name)] = jobfile.ChannelSource(source)
	}

	return nil
}

// splitPair splits a KEY=VALUE flag value. The value may contain '='.
func splitPair(pair string) (key, value string, err error) {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("%q is not in KEY=VALUE form", pair)
	}
	return key, value, nil
}

func parsePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// classifyLaunchError maps launcher failures to issue catalog IDs by the
// failed operation. Unmatched errors fall back to the generic entry.
func classifyLaunchError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		switch ae.Operation {
		case "read source directory":
			return issue.SourceDirNotFoundId
		case "locate entry point":
			return issue.EntryPointNotFoundId
		case "install dependencies":
			return issue.DependencyInstallFailedId
		case "run build hook":
			return issue.BuildHookFailedId
		case "stage channels":
			return issue.ChannelStagingFailedId
		case "connect object store":
			return issue.ObjectStoreUnavailableId
		case "create workspace":
			return issue.WorkspaceCreateFailedId
		case "execute entry point":
			return issue.InterpreterNotFoundId
		}
	}
	return issue.JobFailedId
}

// exitIssueFor picks the catalog entry for a non-zero exit. The shell
// convention spawn codes (126, 127) mean the entry point never ran, which is
// an interpreter problem rather than a job failure.
func exitIssueFor(code runtime.ExitCode) issue.Id {
	if code.IsSpawnFailure() {
		return issue.InterpreterNotFoundId
	}
	return issue.JobFailedId
}

// exitCodeFor clamps out-of-range codes to a plain failure before they reach
// os.Exit. A signal-killed child reports -1.
func exitCodeFor(code runtime.ExitCode) runtime.ExitCode {
	if ok, _ := code.IsValid(); !ok {
		return 1
	}
	return code
}

// newLogger builds the run logger at the configured level; --verbose lowers
// it to debug.
func newLogger(level string) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	if verbose {
		parsed = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           parsed,
		ReportTimestamp: true,
		Prefix:          "smlaunch",
	})
}
