package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/npmregistry"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/pkgmanager"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/process"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/sourcecontrol"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/translator"
)

// RegistryFactory builds a registry client for the configured base URL.
// The URL is only known once settings are loaded, so commands receive the
// factory rather than a ready client.
type RegistryFactory func(baseURL string) domainRepos.RegistryRepository

// TranslatorFactory builds the translation backend chain for one run.
type TranslatorFactory func(cfg translator.Config) domainRepos.TranslatorRepository

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(process.NewExecRunner); err != nil {
		return err
	}

	if err := container.Provide(sourcecontrol.NewGitRepository); err != nil {
		return err
	}

	// Register the package-manager registry with all variants
	if err := container.Provide(func(runner domainRepos.ProcessRunner) *PackageManagerRegistry {
		reg := NewPackageManagerRegistry()
		reg.Register(pkgmanager.NewBun(runner))
		reg.Register(pkgmanager.NewPnpm(runner))
		reg.Register(pkgmanager.NewYarn(runner))
		reg.Register(pkgmanager.NewNpm(runner))
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() RegistryFactory {
		return npmregistry.NewClient
	}); err != nil {
		return err
	}

	if err := container.Provide(func() TranslatorFactory {
		return translator.Build
	}); err != nil {
		return err
	}

	return nil
}
