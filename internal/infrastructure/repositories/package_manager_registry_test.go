//go:build unit

package repositories_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	infraRepos "github.com/pushfleet/pushfleet/internal/infrastructure/repositories"
	doubles "github.com/pushfleet/pushfleet/test/infrastructure/repositorydoubles"
)

func TestPackageManagerRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should return the registered variant by kind", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewPackageManagerRegistry()
		yarn := &doubles.SpyPackageManagerRepository{ManagerKind: entities.PackageManagerYarn}
		registry.Register(yarn)

		// when
		manager, err := registry.Get(entities.PackageManagerYarn)

		// then
		require.NoError(t, err)
		assert.Same(t, yarn, manager)
	})

	t.Run("should error for an unregistered kind", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewPackageManagerRegistry()

		// when
		_, err := registry.Get(entities.PackageManagerBun)

		// then
		require.Error(t, err)
	})

	t.Run("should select the variant from the project lockfile", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "yarn.lock"), nil, 0o644))
		registry := infraRepos.NewPackageManagerRegistry()
		yarn := &doubles.SpyPackageManagerRepository{ManagerKind: entities.PackageManagerYarn}
		registry.Register(yarn)

		// when
		manager, err := registry.ForProject(dir)

		// then
		require.NoError(t, err)
		assert.Same(t, yarn, manager)
	})
}
