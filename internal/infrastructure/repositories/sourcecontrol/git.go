// Package sourcecontrol implements the git operations of the pipeline on
// top of go-git, keeping failure handling structural (typed sentinel
// errors) instead of parsing porcelain output.
package sourcecontrol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

const (
	fallbackAuthorName  = "pushfleet[bot]"
	fallbackAuthorEmail = "pushfleet[bot]@users.noreply.github.com"
)

// GitRepository is the go-git backed SourceControlRepository.
type GitRepository struct{}

// NewGitRepository creates the default source-control repository.
func NewGitRepository() domainRepos.SourceControlRepository {
	return &GitRepository{}
}

func openWorkTree(projectDir string) (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpenWithOptions(projectDir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open git repository at %s: %w", projectDir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open work tree at %s: %w", projectDir, err)
	}

	return repo, worktree, nil
}

// IsRepository reports whether the directory is inside a git work tree.
func (it *GitRepository) IsRepository(projectDir string) bool {
	_, err := git.PlainOpenWithOptions(projectDir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	return err == nil
}

// Changes enumerates every path touched in the working tree or index
// since the last commit.
func (it *GitRepository) Changes(projectDir string) ([]entities.ChangedPath, error) {
	_, worktree, err := openWorkTree(projectDir)
	if err != nil {
		return nil, err
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read git status: %w", err)
	}

	var changes []entities.ChangedPath
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}

		added := fileStatus.Staging == git.Added ||
			fileStatus.Worktree == git.Untracked ||
			fileStatus.Staging == git.Untracked

		changes = append(changes, entities.ChangedPath{Path: path, Added: added})
	}

	return changes, nil
}

// CommitAll stages all pending changes and commits them. Author identity
// comes from the repository config, with a bot fallback.
func (it *GitRepository) CommitAll(projectDir, message string) error {
	repo, worktree, err := openWorkTree(projectDir)
	if err != nil {
		return err
	}

	if addErr := worktree.AddWithOptions(&git.AddOptions{All: true}); addErr != nil {
		return fmt.Errorf("failed to stage changes: %w", addErr)
	}

	author := resolveAuthor(repo)

	if _, commitErr := worktree.Commit(message, &git.CommitOptions{
		Author: author,
	}); commitErr != nil {
		return fmt.Errorf("failed to commit: %w", commitErr)
	}

	return nil
}

// Push pushes the current branch. An already-up-to-date remote is a
// structured non-error from go-git, not a string match on output.
func (it *GitRepository) Push(ctx context.Context, projectDir string) error {
	repo, _, err := openWorkTree(projectDir)
	if err != nil {
		return err
	}

	pushErr := repo.PushContext(ctx, &git.PushOptions{})
	if errors.Is(pushErr, git.NoErrAlreadyUpToDate) {
		logger.Info("Remote already up to date, nothing pushed")
		return nil
	}
	if pushErr != nil {
		return fmt.Errorf("failed to push: %w", pushErr)
	}

	return nil
}

func resolveAuthor(repo *git.Repository) *object.Signature {
	name := fallbackAuthorName
	email := fallbackAuthorEmail

	if cfg, err := repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}

	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}
