package pkgmanager

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// Pnpm drives projects owning a pnpm-lock.yaml.
type Pnpm struct {
	runner repositories.ProcessRunner
}

// NewPnpm creates the pnpm variant.
func NewPnpm(runner repositories.ProcessRunner) repositories.PackageManagerRepository {
	return &Pnpm{runner: runner}
}

func (it *Pnpm) Kind() entities.PackageManager { return entities.PackageManagerPnpm }

func (it *Pnpm) Install(ctx context.Context, projectDir string, packages []string) error {
	args := append([]string{"add"}, packages...)
	return runChecked(ctx, it.runner, projectDir, "pnpm", args...)
}

func (it *Pnpm) Run(
	ctx context.Context,
	projectDir, script string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := append([]string{"run", script}, args...)
	return it.runner.Run(ctx, projectDir, "pnpm", cmdArgs...)
}

func (it *Pnpm) Exec(
	ctx context.Context,
	projectDir, command string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := append([]string{"exec", command}, args...)
	return it.runner.Run(ctx, projectDir, "pnpm", cmdArgs...)
}

// BumpPatch delegates to npm: pnpm has no native version command.
func (it *Pnpm) BumpPatch(ctx context.Context, projectDir string) error {
	return npmVersionPatch(ctx, it.runner, projectDir)
}
