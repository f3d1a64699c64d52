package pkgmanager

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// Npm drives projects owned by npm (the default when no lockfile exists).
type Npm struct {
	runner repositories.ProcessRunner
}

// NewNpm creates the npm variant.
func NewNpm(runner repositories.ProcessRunner) repositories.PackageManagerRepository {
	return &Npm{runner: runner}
}

func (it *Npm) Kind() entities.PackageManager { return entities.PackageManagerNpm }

func (it *Npm) Install(ctx context.Context, projectDir string, packages []string) error {
	args := append([]string{"install"}, packages...)
	return runChecked(ctx, it.runner, projectDir, "npm", args...)
}

func (it *Npm) Run(
	ctx context.Context,
	projectDir, script string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := []string{"run", script}
	if len(args) > 0 {
		cmdArgs = append(cmdArgs, "--")
		cmdArgs = append(cmdArgs, args...)
	}
	return it.runner.Run(ctx, projectDir, "npm", cmdArgs...)
}

func (it *Npm) Exec(
	ctx context.Context,
	projectDir, command string,
	args ...string,
) (entities.ProcessResult, error) {
	cmdArgs := append([]string{"--yes", command}, args...)
	return it.runner.Run(ctx, projectDir, "npx", cmdArgs...)
}

func (it *Npm) BumpPatch(ctx context.Context, projectDir string) error {
	return npmVersionPatch(ctx, it.runner, projectDir)
}
