package pkgmanager

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// Bun drives projects owning a bun.lock or bun.lockb.
type Bun struct {
	runner repositories.ProcessRunner
}

// NewBun creates the bun variant.
func NewBun(runner repositories.ProcessRunner) repositories.PackageManagerRepository {
	return &Bun{runner: runner}
}

func (it *Bun) Kind() entities.PackageManager { return entities.PackageManagerBun }

func (it *Bun) Install(ctx context.Context, projectDir string, packages []string) error {
	args := append([]string{"add"}, packages...)
	return runChecked(ctx, it.runner, projectDir, "bun", args...)
}

func (it *Bun) Run(
	ctx context.Context,
	projectDir, script string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := append([]string{"run", script}, args...)
	return it.runner.Run(ctx, projectDir, "bun", cmdArgs...)
}

func (it *Bun) Exec(
	ctx context.Context,
	projectDir, command string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := append([]string{command}, args...)
	return it.runner.Run(ctx, projectDir, "bunx", cmdArgs...)
}

// BumpPatch delegates to npm: bun has no native version command.
func (it *Bun) BumpPatch(ctx context.Context, projectDir string) error {
	return npmVersionPatch(ctx, it.runner, projectDir)
}
