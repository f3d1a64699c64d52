//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushfleet/pushfleet/internal/domain/commands"
	"github.com/pushfleet/pushfleet/internal/domain/entities"
	doubles "github.com/pushfleet/pushfleet/test/infrastructure/repositorydoubles"
)

func writeProjectManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, entities.ManifestFileName), []byte(content), 0o644,
	))
	return dir
}

func TestReconcilerReconcile(t *testing.T) {
	t.Parallel()

	t.Run("should do nothing without a configured scope", func(t *testing.T) {
		t.Parallel()

		// given
		registry := &doubles.SpyRegistryRepository{}
		manager := &doubles.SpyPackageManagerRepository{}
		reconciler := commands.NewReconcilerForTest(registry, manager, "")

		// when
		updated, err := reconciler.Reconcile(context.Background(), t.TempDir(), false)

		// then
		require.NoError(t, err)
		assert.False(t, updated)
		assert.Empty(t, registry.QueriedPackages)
	})

	t.Run("should install outdated scoped dependencies in one batch", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeProjectManifest(t, `{
  "dependencies": {"@acme/a": "^1.0.0", "lodash": "^4.0.0"},
  "devDependencies": {"@acme/b": "~2.0.0"}
}`)
		registry := &doubles.SpyRegistryRepository{
			Versions: map[string]string{"@acme/a": "1.1.0", "@acme/b": "2.0.0"},
		}
		manager := &doubles.SpyPackageManagerRepository{}
		reconciler := commands.NewReconcilerForTest(registry, manager, "@acme")

		// when
		updated, err := reconciler.Reconcile(context.Background(), dir, false)

		// then
		require.NoError(t, err)
		assert.True(t, updated)
		require.Len(t, manager.Installed, 1)
		assert.Equal(t, []string{"@acme/a@1.1.0"}, manager.Installed[0])
		assert.NotContains(t, registry.QueriedPackages, "lodash")
	})

	t.Run("should report no updates when every version matches", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeProjectManifest(t, `{"dependencies": {"@acme/a": "^1.0.0"}}`)
		registry := &doubles.SpyRegistryRepository{
			Versions: map[string]string{"@acme/a": "1.0.0"},
		}
		manager := &doubles.SpyPackageManagerRepository{}
		reconciler := commands.NewReconcilerForTest(registry, manager, "@acme")

		// when
		updated, err := reconciler.Reconcile(context.Background(), dir, false)

		// then
		require.NoError(t, err)
		assert.False(t, updated)
		assert.Empty(t, manager.Installed)
	})

	t.Run("should edit peer constraints in place preserving the prefix", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeProjectManifest(t, `{
  "peerDependencies": {"@acme/core": "^3.0.0"}
}`)
		registry := &doubles.SpyRegistryRepository{
			Versions: map[string]string{"@acme/core": "3.2.0"},
		}
		manager := &doubles.SpyPackageManagerRepository{}
		reconciler := commands.NewReconcilerForTest(registry, manager, "@acme")

		// when
		updated, err := reconciler.Reconcile(context.Background(), dir, false)

		// then
		require.NoError(t, err)
		assert.True(t, updated)
		assert.Empty(t, manager.Installed)
		data, readErr := os.ReadFile(filepath.Join(dir, entities.ManifestFileName))
		require.NoError(t, readErr)
		assert.Contains(t, string(data), `"@acme/core": "^3.2.0"`)
	})

	t.Run("should propagate registry lookup failures", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeProjectManifest(t, `{"dependencies": {"@acme/a": "^1.0.0"}}`)
		lookupErr := errors.New("registry down")
		registry := &doubles.SpyRegistryRepository{LookupErr: lookupErr}
		manager := &doubles.SpyPackageManagerRepository{}
		reconciler := commands.NewReconcilerForTest(registry, manager, "@acme")

		// when
		_, err := reconciler.Reconcile(context.Background(), dir, false)

		// then
		require.ErrorIs(t, err, lookupErr)
		assert.Empty(t, manager.Installed)
	})

	t.Run("should not mutate anything in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeProjectManifest(t, `{"dependencies": {"@acme/a": "^1.0.0"}}`)
		registry := &doubles.SpyRegistryRepository{
			Versions: map[string]string{"@acme/a": "1.1.0"},
		}
		manager := &doubles.SpyPackageManagerRepository{}
		reconciler := commands.NewReconcilerForTest(registry, manager, "@acme")

		// when
		updated, err := reconciler.Reconcile(context.Background(), dir, true)

		// then
		require.NoError(t, err)
		assert.True(t, updated)
		assert.Empty(t, manager.Installed)
	})
}
