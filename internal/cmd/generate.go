package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cameronsjo/fabricdocs/internal/config"
	"github.com/cameronsjo/fabricdocs/internal/docgen"
	"github.com/cameronsjo/fabricdocs/internal/fabric"
	"github.com/cameronsjo/fabricdocs/internal/logging"
	"github.com/cameronsjo/fabricdocs/internal/site"
	"github.com/cameronsjo/fabricdocs/internal/ui"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [input_dir]",
		Short: "Generate MkDocs documentation from fabric YAML files",
		Long: `Read every YAML file in input_dir, deep-merge them, and write an MkDocs
site: <output-dir>/mkdocs.yml and <output-dir>/docs/*.md.

Files are merged in file name order. Files that fail to parse are skipped
with a warning. If no file contributes content, nothing is written and
the command fails.

The index page shows CI_COMMIT_TIMESTAMP when set, otherwise the time of
the HEAD commit of the git repository holding input_dir.

Examples:
  # Generate into ./docs
  fabricdocs generate host_vars/

  # Custom output directory, skip drafts
  fabricdocs generate host_vars/ -o site --exclude '*.draft.yaml'`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDirectories,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output-dir", "o", "", "output directory (default: docs)")
	flags.StringSlice("include", nil, "file name patterns to read (default: *.yaml,*.yml)")
	flags.StringSlice("exclude", nil, "file name patterns to skip")
	flags.String("site-url", "", "override site_url in mkdocs.yml")
	flags.String("repo-url", "", "override repo_url in mkdocs.yml")
	flags.String("edit-uri", "", "override edit_uri in mkdocs.yml")

	bindFlag(v, config.KeyOutputDir, flags.Lookup("output-dir"))
	bindFlag(v, config.KeyInclude, flags.Lookup("include"))
	bindFlag(v, config.KeyExclude, flags.Lookup("exclude"))
	bindFlag(v, config.KeySiteURL, flags.Lookup("site-url"))
	bindFlag(v, config.KeyRepoURL, flags.Lookup("repo-url"))
	bindFlag(v, config.KeyEditURI, flags.Lookup("edit-uri"))

	_ = cmd.RegisterFlagCompletionFunc("output-dir", completeDirectories)

	return cmd
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.InputDir = args[0]
	}
	if cfg.InputDir == "" {
		return errors.New("input directory is required (argument or input_dir in config)")
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel})

	ui.Header("Generating fabric documentation")
	ui.Info("Input:  %s", cfg.InputDir)
	ui.Info("Output: %s", cfg.OutputDir)

	result, err := docgen.Run(cmd.Context(), docgen.Options{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		Site: []site.Option{
			site.WithSiteURL(cfg.Site.SiteURL),
			site.WithRepoURL(cfg.Site.RepoURL),
			site.WithEditURI(cfg.Site.EditURI),
		},
		Logger: logger,
	})
	if result != nil {
		for _, skipped := range result.Skipped {
			ui.Warning("Skipped %s: %v", skipped.File, skipped.Err)
		}
	}
	if err != nil {
		if errors.Is(err, fabric.ErrNoConfiguration) {
			ui.Error("No valid YAML configuration found in %s", cfg.InputDir)
		}
		return err
	}

	ui.Info("Fabric: %s", result.DisplayName)
	for _, path := range result.Written {
		ui.Page("Generated %s", path)
	}
	for _, page := range result.MissingPages {
		ui.Warning("Navigation links to %s, which was not generated", page)
	}

	ui.Success("Documentation written to %s (%d files)", cfg.OutputDir, len(result.Written))
	fmt.Fprintln(cmd.OutOrStdout(), cfg.ManifestPath())
	return nil
}
