package pkgmanager

import (
	"os"
	"path/filepath"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// Detect determines which package manager owns a project by checking for
// lockfiles in fixed precedence order: bun > pnpm > yarn > npm. Projects
// without any lockfile default to npm.
func Detect(projectDir string) entities.PackageManager {
	ordered := []entities.PackageManager{
		entities.PackageManagerBun,
		entities.PackageManagerPnpm,
		entities.PackageManagerYarn,
	}

	for _, kind := range ordered {
		for _, lockfile := range kind.Lockfiles() {
			if _, err := os.Stat(filepath.Join(projectDir, lockfile)); err == nil {
				return kind
			}
		}
	}

	return entities.PackageManagerNpm
}
