package fabric

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cameronsjo/fabricdocs/internal/tree"
)

// ErrNoConfiguration indicates that no document contributed any content.
var ErrNoConfiguration = errors.New("no valid configuration found")

// DefaultInclude matches the YAML file extensions accepted by default.
var DefaultInclude = []string{"*.yaml", "*.yml"}

// SkippedDocument records a document that could not be read or parsed.
type SkippedDocument struct {
	File string
	Err  error
}

// LoadResult holds the outcome of loading an input directory.
type LoadResult struct {
	// Dir is the input directory as given by the caller.
	Dir string

	// Files lists every discovered document name, parsed or not.
	Files []string

	// Skipped lists documents that failed to read or parse.
	Skipped []SkippedDocument

	// Merged is the merge of every parsed document.
	Merged *tree.Mapping
}

// Discover returns the names of regular files directly inside dir that match
// at least one include pattern and no exclude pattern. Patterns use
// doublestar syntax and are matched against the file name. Names are
// returned in lexical order.
func Discover(dir string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input directory not found: %s", dir)
		}
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if matchAny(include, name) && !matchAny(exclude, name) {
			files = append(files, name)
		}
	}

	return files, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// LoadFile reads and decodes a single document.
func LoadFile(path string) (*tree.Mapping, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc, err := tree.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// LoadDir discovers and merges the documents in dir.
// Documents that fail to load are recorded in Skipped and do not stop the
// run. If nothing was merged, the partial result is returned together with
// ErrNoConfiguration.
func LoadDir(dir string, include, exclude []string) (*LoadResult, error) {
	files, err := Discover(dir, include, exclude)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{
		Dir:    dir,
		Files:  files,
		Merged: tree.NewMapping(),
	}

	for _, name := range files {
		doc, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedDocument{File: name, Err: err})
			continue
		}
		result.Merged = tree.Merge(result.Merged, doc)
	}

	if result.Merged.Len() == 0 {
		return result, fmt.Errorf("%w in %s", ErrNoConfiguration, dir)
	}

	return result, nil
}
