package repositories

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// SourceControlRepository abstracts the version-control operations the
// pipeline needs on the project currently being processed.
type SourceControlRepository interface {
	// IsRepository reports whether the directory is inside a git work tree.
	IsRepository(projectDir string) bool

	// Changes enumerates the paths touched since the last commit
	// (working tree and index), with added-file flags.
	Changes(projectDir string) ([]entities.ChangedPath, error)

	// CommitAll stages every pending change and commits with the message.
	CommitAll(projectDir, message string) error

	// Push pushes the current branch to its remote. A remote that is
	// already up to date is success, not an error.
	Push(ctx context.Context, projectDir string) error
}
