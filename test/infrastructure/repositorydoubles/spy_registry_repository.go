//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// SpyRegistryRepository implements repositories.RegistryRepository as a
// configurable spy.
type SpyRegistryRepository struct {
	// --- LatestVersion ---
	Versions  map[string]string // package name -> latest version
	LookupErr error

	// spy: package names queried
	QueriedPackages []string
}

var _ repositories.RegistryRepository = (*SpyRegistryRepository)(nil)

func (r *SpyRegistryRepository) LatestVersion(
	_ context.Context, packageName string,
) (string, error) {
	r.QueriedPackages = append(r.QueriedPackages, packageName)
	if r.LookupErr != nil {
		return "", r.LookupErr
	}
	if version, ok := r.Versions[packageName]; ok {
		return version, nil
	}
	return "", fmt.Errorf("%w: unknown package %q", repositories.ErrRegistryLookup, packageName)
}
