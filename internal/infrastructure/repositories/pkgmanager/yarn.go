package pkgmanager

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// Yarn drives projects owning a yarn.lock.
type Yarn struct {
	runner repositories.ProcessRunner
}

// NewYarn creates the yarn variant.
func NewYarn(runner repositories.ProcessRunner) repositories.PackageManagerRepository {
	return &Yarn{runner: runner}
}

func (it *Yarn) Kind() entities.PackageManager { return entities.PackageManagerYarn }

func (it *Yarn) Install(ctx context.Context, projectDir string, packages []string) error {
	args := append([]string{"add"}, packages...)
	return runChecked(ctx, it.runner, projectDir, "yarn", args...)
}

func (it *Yarn) Run(
	ctx context.Context,
	projectDir, script string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := append([]string{"run", script}, args...)
	return it.runner.Run(ctx, projectDir, "yarn", cmdArgs...)
}

func (it *Yarn) Exec(
	ctx context.Context,
	projectDir, command string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := append([]string{"exec", command}, args...)
	return it.runner.Run(ctx, projectDir, "yarn", cmdArgs...)
}

func (it *Yarn) BumpPatch(ctx context.Context, projectDir string) error {
	return runChecked(ctx, it.runner, projectDir, "yarn", "version", "--patch", "--no-git-tag-version")
}
