// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"smlaunch-cli/internal/app/launch"

	"github.com/spf13/cobra"
)

var (
	envJobFile string

	// envCmd prints the derived contract without launching anything
	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Print the derived command line and environment for a job",
		Long: `Print the command line and SM_* environment a launch of this job
would derive, without creating a workspace or executing anything.

Channel paths shown are the ones a real launch would materialize.`,
		Example: `  smlaunch env
  smlaunch env -f jobs/mnist.cue`,
		RunE: runEnv,
	}
)

func init() {
	envCmd.Flags().StringVarP(&envJobFile, "file", "f", "smjob.cue", "job file to inspect")
}

func runEnv(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	job, err := loadJob(envJobFile)
	if err != nil {
		return err
	}

	orch, err := launch.NewOrchestrator(cfg, nil)
	if err != nil {
		return err
	}
	plan, err := orch.Derive(job)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, TitleStyle.Render("Derived command line"))
	entry := job.EntryPoint
	if len(plan.Args) > 0 {
		entry += " " + strings.Join(plan.Args, " ")
	}
	fmt.Fprintf(out, "  %s\n\n", CmdStyle.Render(entry))

	fmt.Fprintln(out, TitleStyle.Render("Derived environment"))
	keys := make([]string, 0, len(plan.Env))
	for k := range plan.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s=%s\n", CmdStyle.Render(k), plan.Env[k])
	}

	return nil
}
