// Package pkgmanager holds one PackageManagerRepository variant per
// supported tool. All variants shell out through the shared ProcessRunner
// and convert non-zero exits of mutating operations into hard errors.
package pkgmanager

import (
	"context"
	"fmt"

	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// runChecked runs a command and converts a non-zero exit into an error
// carrying the captured output. Used for operations that must succeed
// (install, version bump).
func runChecked(
	ctx context.Context,
	runner repositories.ProcessRunner,
	dir, command string,
	args ...string,
) error {
	result, err := runner.Run(ctx, dir, command, args...)
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return fmt.Errorf(
			"%s exited with code %d:\n%s",
			command, result.ExitCode, result.CombinedOutput(),
		)
	}
	return nil
}

// npmVersionPatch delegates the patch bump to npm. bun and pnpm have no
// native version command, and npm's works against any manifest.
func npmVersionPatch(
	ctx context.Context,
	runner repositories.ProcessRunner,
	dir string,
) error {
	return runChecked(ctx, runner, dir, "npm", "version", "patch", "--no-git-tag-version")
}
