// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a new smjob.cue
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new smjob.cue in the current directory",
		Long: `Create a new smjob.cue in the current directory with a starter job.

This command generates a commented job file to help you get started
quickly. Point source_dir at your training script directory and adjust
the entry point, hyperparameters, and channels.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing smjob.cue")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := "smjob.cue"
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(starterJobFile), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Point source_dir at your training script directory")
	fmt.Println("  2. Run 'smlaunch env' to preview the derived command line")
	fmt.Println("  3. Run 'smlaunch run' to launch the job")

	return nil
}

// starterJobFile is the scaffold written by 'smlaunch init'. It must parse
// against the job schema as-is.
const starterJobFile = `// smlaunch job definition.

name:        "my-training-job"
entry_point: "train.py"
source_dir:  "."

hyperparameters: {
	num_epochs: 10
	lr:         0.01
}

// Channels map data roles to local directories or s3:// URIs. Each channel
// is exposed to the script as SM_CHANNEL_<NAME>.
channels: {
	training: "./data/train"
}

// env: {
// 	files: ["./.env?"]
// 	vars: {WANDB_MODE: "offline"}
// }
`
