// Package cmd provides the CLI commands for fabricdocs.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cameronsjo/fabricdocs/internal/config"
	"github.com/cameronsjo/fabricdocs/internal/ui"
)

const version = "0.1.0"

// newRootCmd builds the command tree. Each call gets its own viper
// instance so flag and config state never leaks between runs.
func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "fabricdocs",
		Short: "MkDocs documentation for VXLAN EVPN fabrics",
		Long: `fabricdocs - documentation for VXLAN EVPN fabrics

Merges a directory of NetAsCode VXLAN YAML files and renders an MkDocs site:
fabric overview, global settings, spine and leaf topology, VRFs and networks
with their resolved switch attachments.

COMMANDS
  generate [input_dir]  Render mkdocs.yml and docs/*.md
    --output-dir, -o    Output directory (default: docs)
    --include/--exclude File name patterns for input documents
  upload                Zip an artifacts directory and post it to Webex
    --artifacts-dir     Directory to zip (required)
    --room-id, --token  Webex room and bot token
    --secrets           SOPS file holding webex_token

CONFIGURATION
  fabricdocs.yaml in the working directory (or --config), overridden by
  FABRICDOCS_* environment variables, overridden by flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(v, cfgFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: fabricdocs.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	bindFlag(v, config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newGenerateCmd(v))
	rootCmd.AddCommand(newUploadCmd(v))

	rootCmd.SetVersionTemplate("fabricdocs version {{.Version}}\n")
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		ui.Red.Fprintf(os.Stderr, "✗ %v\n", err)
		stop()
		os.Exit(1)
	}
}

// bindFlag binds a flag to a config key. A flag only overrides the
// config file and environment when it was set explicitly.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
