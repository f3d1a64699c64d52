//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// CommitCall records a single invocation of CommitAll.
type CommitCall struct {
	Dir     string
	Message string
}

// SpySourceControlRepository implements repositories.SourceControlRepository
// as a configurable spy.
type SpySourceControlRepository struct {
	// --- IsRepository ---
	NotARepo bool

	// --- Changes ---
	ChangedPaths map[string][]entities.ChangedPath // dir -> changes
	ChangesErr   error

	// --- CommitAll ---
	CommitErr error
	Commits   []CommitCall

	// --- Push ---
	PushErr    error
	PushedDirs []string
}

var _ repositories.SourceControlRepository = (*SpySourceControlRepository)(nil)

func (s *SpySourceControlRepository) IsRepository(_ string) bool {
	return !s.NotARepo
}

func (s *SpySourceControlRepository) Changes(projectDir string) ([]entities.ChangedPath, error) {
	if s.ChangesErr != nil {
		return nil, s.ChangesErr
	}
	return s.ChangedPaths[projectDir], nil
}

func (s *SpySourceControlRepository) CommitAll(projectDir, message string) error {
	s.Commits = append(s.Commits, CommitCall{Dir: projectDir, Message: message})
	return s.CommitErr
}

func (s *SpySourceControlRepository) Push(_ context.Context, projectDir string) error {
	s.PushedDirs = append(s.PushedDirs, projectDir)
	return s.PushErr
}
