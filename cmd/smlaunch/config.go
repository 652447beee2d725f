// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"smlaunch-cli/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `smlaunch config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage smlaunch configuration",
	Long: `Manage smlaunch configuration.

Configuration is stored in:
  - Linux: ~/.config/smlaunch/config.cue
  - macOS: ~/Library/Application Support/smlaunch/config.cue
  - Windows: %APPDATA%\smlaunch\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateDefaultConfig(); err != nil {
				return err
			}
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), filepath.Join(cfgDir, "config.cue"))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Println(filepath.Join(cfgDir, "config.cue"))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if cfgDir, dirErr := config.ConfigDir(); dirErr == nil {
		cfgPath := filepath.Join(cfgDir, "config.cue")
		if _, statErr := os.Stat(cfgPath); statErr == nil {
			fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("interpreter"), SuccessStyle.Render(cfg.Interpreter))
	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("workspace_dir"), SuccessStyle.Render(orDefault(cfg.WorkspaceDir, "(system temp dir)")))
	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("keep_workspace"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.KeepWorkspace)))
	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("log_level"), SuccessStyle.Render(cfg.LogLevel))

	if cfg.ObjectStore.IsConfigured() {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("object_store.endpoint"), SuccessStyle.Render(cfg.ObjectStore.Endpoint))
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("object_store.region"), SuccessStyle.Render(orDefault(cfg.ObjectStore.Region, "(none)")))
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("object_store.use_ssl"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.ObjectStore.UseSSL)))
	}

	if cfg.Artifacts.Upload || cfg.Artifacts.Bucket != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("artifacts.upload"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.Artifacts.Upload)))
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("artifacts.bucket"), SuccessStyle.Render(cfg.Artifacts.Bucket))
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("artifacts.prefix"), SuccessStyle.Render(orDefault(cfg.Artifacts.Prefix, "(none)")))
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
