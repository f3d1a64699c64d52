package repositories

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// PackageManagerRepository exposes uniform operations over the tool that
// owns a project. A variant exists per supported package manager; the
// right one is selected once per project via lockfile detection and held
// for the remainder of that project's processing.
type PackageManagerRepository interface {
	// Kind returns the package manager this variant drives.
	Kind() entities.PackageManager

	// Install installs the given package@version arguments as one batched
	// invocation, mutating manifest and lockfile on disk.
	Install(ctx context.Context, projectDir string, packages []string) error

	// Run runs a script declared in the project manifest.
	Run(ctx context.Context, projectDir, script string, args ...string) (entities.ProcessResult, error)

	// Exec runs an arbitrary tool through the package manager's runner
	// (npx / bunx / pnpm exec / yarn exec).
	Exec(ctx context.Context, projectDir, command string, args ...string) (entities.ProcessResult, error)

	// BumpPatch increments the manifest's patch version without creating
	// a git tag.
	BumpPatch(ctx context.Context, projectDir string) error
}
