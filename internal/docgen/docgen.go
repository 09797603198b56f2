// Package docgen runs the documentation pipeline: load and merge the fabric
// documents, render the report pages and the site manifest, then write them
// into the output directory under a lock.
package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cameronsjo/fabricdocs/internal/fabric"
	"github.com/cameronsjo/fabricdocs/internal/fileutil"
	"github.com/cameronsjo/fabricdocs/internal/gitinfo"
	"github.com/cameronsjo/fabricdocs/internal/lock"
	"github.com/cameronsjo/fabricdocs/internal/report"
	"github.com/cameronsjo/fabricdocs/internal/site"
)

// DocsDirName is the pages directory inside the output directory.
const DocsDirName = "docs"

// TimestampEnv names the variable CI systems set to the commit time.
const TimestampEnv = "CI_COMMIT_TIMESTAMP"

// TimestampFunc returns the generation time shown on the index page for an
// input directory. An empty string renders as N/A.
type TimestampFunc func(inputDir string) string

// Options configures a run.
type Options struct {
	InputDir  string
	OutputDir string

	// Include and Exclude filter the documents in InputDir.
	Include []string
	Exclude []string

	// Site overrides the manifest URLs.
	Site []site.Option

	// Timestamp defaults to DefaultTimestamp.
	Timestamp TimestampFunc

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Result describes a run.
type Result struct {
	// FabricName is the fabric name with underscores, DisplayName with spaces.
	FabricName  string
	DisplayName string

	// Files lists every discovered document.
	Files []string

	// Skipped lists documents that could not be parsed.
	Skipped []fabric.SkippedDocument

	// Written lists the files written, manifest first.
	Written []string

	// MissingPages lists navigation targets that were not generated
	// because their section is absent.
	MissingPages []string
}

// Run executes the pipeline. When no document contributes content it
// returns fabric.ErrNoConfiguration and leaves the output directory
// untouched; the partial Result still reports discovered and skipped files.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timestamp := opts.Timestamp
	if timestamp == nil {
		timestamp = DefaultTimestamp
	}

	loaded, err := fabric.LoadDir(opts.InputDir, opts.Include, opts.Exclude)
	if loaded == nil {
		return nil, err
	}

	result := &Result{Files: loaded.Files, Skipped: loaded.Skipped}
	for _, name := range loaded.Files {
		logger.Debug("discovered document", "file", name)
	}
	for _, skipped := range loaded.Skipped {
		logger.Warn("skipped document", "file", skipped.File, "error", skipped.Err)
	}
	if err != nil {
		return result, err
	}

	cfg := fabric.New(loaded.Merged)
	result.FabricName = cfg.Name()
	result.DisplayName = cfg.DisplayName()

	overlay, _ := cfg.Overlay()
	for _, dup := range fabric.DuplicateGroups(overlay) {
		logger.Warn("duplicate attach group, first one wins",
			"section", dup.Section, "name", dup.Name, "count", dup.Count)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return result, err
	}

	skippedNames := make([]string, 0, len(loaded.Skipped))
	for _, s := range loaded.Skipped {
		skippedNames = append(skippedNames, s.File)
	}

	pages, err := renderer.All(cfg, report.IndexInfo{
		InputDir:  opts.InputDir,
		Timestamp: timestamp(opts.InputDir),
		Files:     loaded.Files,
		Skipped:   skippedNames,
	})
	if err != nil {
		return result, err
	}

	manifest, err := site.Render(result.DisplayName, opts.Site...)
	if err != nil {
		return result, err
	}

	result.MissingPages = missingPages(pages)
	for _, name := range result.MissingPages {
		logger.Warn("navigation entry has no page", "page", name)
	}

	err = lock.WithLock(opts.OutputDir, func() error {
		return writeOutput(ctx, logger, opts.OutputDir, manifest, pages, result)
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

func writeOutput(ctx context.Context, logger *slog.Logger, outDir string, manifest []byte, pages []report.Page, result *Result) error {
	docsDir := filepath.Join(outDir, DocsDirName)
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return fmt.Errorf("create docs directory: %w", err)
	}

	manifestPath := filepath.Join(outDir, site.FileName)
	if err := fileutil.WriteFile(manifestPath, manifest, 0644); err != nil {
		return fmt.Errorf("write %s: %w", site.FileName, err)
	}
	result.Written = append(result.Written, manifestPath)
	logger.Info("generated file", "path", manifestPath)

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(docsDir, page.Name)
		if err := fileutil.WriteFile(path, []byte(page.Body), 0644); err != nil {
			return fmt.Errorf("write %s: %w", page.Name, err)
		}
		result.Written = append(result.Written, path)
		logger.Info("generated file", "path", path)
	}

	return nil
}

// missingPages returns the navigation pages not present in pages.
func missingPages(pages []report.Page) []string {
	generated := make(map[string]bool, len(pages))
	for _, p := range pages {
		generated[p.Name] = true
	}

	var missing []string
	for _, name := range site.Pages() {
		if !generated[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// DefaultTimestamp uses CI_COMMIT_TIMESTAMP when set, then the HEAD commit
// time of the repository holding inputDir, then nothing.
func DefaultTimestamp(inputDir string) string {
	if ts := os.Getenv(TimestampEnv); ts != "" {
		return ts
	}

	commit, err := gitinfo.Head(inputDir)
	if err != nil {
		return ""
	}
	return commit.When.Format(time.RFC3339)
}
