// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"smlaunch-cli/internal/config"
	"smlaunch-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// interactive attaches the entry point to a PTY
	interactive bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "smlaunch",
		Short: "A local launcher for script-mode training jobs",
		Long: TitleStyle.Render("smlaunch") + SubtitleStyle.Render(" - A local launcher for script-mode training jobs") + `

smlaunch packages a training script directory, installs its declared
dependencies, stages named data channels, derives the script-mode
command line and SM_* environment, and executes the entry point as a
module, streaming its output.

Jobs are defined in 'smjob.cue' files using CUE format.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create an smjob.cue next to your training script
  2. Declare the entry point, hyperparameters, and channels
  3. Launch with: smlaunch run

` + SubtitleStyle.Render("Examples:") + `
  smlaunch run                  Launch the job in ./smjob.cue
  smlaunch run -f jobs/mnist.cue  Launch a specific job file
  smlaunch env                  Print the derived command line and environment
  smlaunch init                 Create a starter smjob.cue
  smlaunch config show          Show current configuration`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/smlaunch/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false, "attach the entry point to a PTY")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// loadConfig resolves the effective launcher configuration, honoring the
// --config flag. Errors are rendered against the config issue catalog entry.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		return nil, err
	}
	if cfg.UI.Verbose {
		verbose = true
	}
	return cfg, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue writes a catalog entry to stderr. Rendering failures are
// swallowed; the underlying error is still returned to cobra by the caller.
func renderIssue(id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	if rendered, err := entry.Render("dark"); err == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
