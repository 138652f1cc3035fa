// Package git wraps the go-git operations nginit needs: initializing a fresh
// repository in the scaffolded project and creating the initial commit.
//
// The project generator is always invoked with version-control initialization
// suppressed, so when git setup is enabled the repository is created here,
// after the lint toolchain is fully wired. That way the very first commit
// already contains the complete configuration.
package git

import (
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository wraps a local git repository rooted at the project directory.
type Repository struct {
	repo *gogit.Repository
	dir  string
}

// Init creates a new git repository at dir.
// Fails if dir is already a repository.
//
// Parameters:
//   - dir: The project directory to initialize
//
// Returns:
//   - *Repository: The repository wrapper
//   - error: Any error encountered
func Init(dir string) (*Repository, error) {
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository at %s: %w", dir, err)
	}

	return &Repository{repo: repo, dir: dir}, nil
}

// StageAll stages every file in the working tree.
// This is equivalent to "git add ."
func (r *Repository) StageAll() error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	if _, err := w.Add("."); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}

	return nil
}

// Commit creates a commit with the staged changes.
// This is equivalent to "git commit -m <message>"
//
// Parameters:
//   - message: Commit message
//   - author: Author name
//   - email: Author email
//
// Returns:
//   - string: The commit hash (SHA)
//   - error: Any error encountered
func (r *Repository) Commit(message, author, email string) (string, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	hash, err := w.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}

	return hash.String(), nil
}

// InitAndCommit initializes a repository at dir, stages everything and
// creates the initial commit. This is the one-shot entry point used by the
// pipeline's git step.
func InitAndCommit(dir, message, author, email string) (string, error) {
	repo, err := Init(dir)
	if err != nil {
		return "", err
	}

	if err := repo.StageAll(); err != nil {
		return "", err
	}

	return repo.Commit(message, author, email)
}
