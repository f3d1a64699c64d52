//go:build unit

package pkgmanager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/pkgmanager"
)

func touchFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	t.Run("should detect bun from either lockfile flavor", func(t *testing.T) {
		t.Parallel()

		// given
		textLock := t.TempDir()
		touchFiles(t, textLock, "bun.lock")
		binaryLock := t.TempDir()
		touchFiles(t, binaryLock, "bun.lockb")

		// when / then
		assert.Equal(t, entities.PackageManagerBun, pkgmanager.Detect(textLock))
		assert.Equal(t, entities.PackageManagerBun, pkgmanager.Detect(binaryLock))
	})

	t.Run("should prefer bun over every other lockfile", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		touchFiles(t, dir, "bun.lockb", "pnpm-lock.yaml", "yarn.lock", "package-lock.json")

		// when
		kind := pkgmanager.Detect(dir)

		// then
		assert.Equal(t, entities.PackageManagerBun, kind)
	})

	t.Run("should prefer pnpm over yarn and npm", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		touchFiles(t, dir, "pnpm-lock.yaml", "yarn.lock", "package-lock.json")

		// when
		kind := pkgmanager.Detect(dir)

		// then
		assert.Equal(t, entities.PackageManagerPnpm, kind)
	})

	t.Run("should prefer yarn over npm", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		touchFiles(t, dir, "yarn.lock", "package-lock.json")

		// when
		kind := pkgmanager.Detect(dir)

		// then
		assert.Equal(t, entities.PackageManagerYarn, kind)
	})

	t.Run("should default to npm without any lockfile", func(t *testing.T) {
		t.Parallel()

		// when
		kind := pkgmanager.Detect(t.TempDir())

		// then
		assert.Equal(t, entities.PackageManagerNpm, kind)
	})
}
