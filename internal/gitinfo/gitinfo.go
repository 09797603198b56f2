// Package gitinfo reads commit metadata for the directory the fabric
// documents live in.
package gitinfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no git repository contains the path.
var ErrNotRepository = errors.New("not a git repository")

// Commit describes the HEAD commit.
type Commit struct {
	Hash string
	When time.Time
}

// Head returns the HEAD commit of the repository containing dir, searching
// parent directories for .git.
func Head(dir string) (*Commit, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", ref.Hash(), err)
	}

	return &Commit{
		Hash: commit.Hash.String(),
		When: commit.Committer.When,
	}, nil
}
