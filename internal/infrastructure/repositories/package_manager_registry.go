package repositories

import (
	"fmt"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/pkgmanager"
)

// PackageManagerRegistry manages the registered package-manager variants.
type PackageManagerRegistry struct {
	managers map[entities.PackageManager]domainRepos.PackageManagerRepository
}

// NewPackageManagerRegistry creates an empty registry.
func NewPackageManagerRegistry() *PackageManagerRegistry {
	return &PackageManagerRegistry{
		managers: make(map[entities.PackageManager]domainRepos.PackageManagerRepository),
	}
}

// Register adds a variant under its kind.
func (r *PackageManagerRegistry) Register(m domainRepos.PackageManagerRepository) {
	r.managers[m.Kind()] = m
}

// Get returns the variant for the given kind.
func (r *PackageManagerRegistry) Get(
	kind entities.PackageManager,
) (domainRepos.PackageManagerRepository, error) {
	manager, ok := r.managers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown package manager: %q", kind)
	}
	return manager, nil
}

// ForProject detects the package manager owning the project and returns
// the matching variant. The selection is made once and held for the
// remainder of that project's processing.
func (r *PackageManagerRegistry) ForProject(
	projectDir string,
) (domainRepos.PackageManagerRepository, error) {
	return r.Get(pkgmanager.Detect(projectDir))
}

// Kinds returns the registered package-manager kinds.
func (r *PackageManagerRegistry) Kinds() []entities.PackageManager {
	kinds := make([]entities.PackageManager, 0, len(r.managers))
	for kind := range r.managers {
		kinds = append(kinds, kind)
	}
	return kinds
}
