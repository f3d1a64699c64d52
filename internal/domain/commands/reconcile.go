package commands

import (
	"context"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// reconciler keeps a project's private-scope dependencies on their latest
// published versions. Regular and dev dependencies are installed in one
// batched call (one lockfile rewrite); peer ranges are edited in place
// because they are not installable.
type reconciler struct {
	registry domainRepos.RegistryRepository
	manager  domainRepos.PackageManagerRepository
	scope    string
}

func newReconciler(
	registry domainRepos.RegistryRepository,
	manager domainRepos.PackageManagerRepository,
	scope string,
) *reconciler {
	return &reconciler{registry: registry, manager: manager, scope: scope}
}

// Reconcile returns whether any update was applied. A failed registry
// lookup propagates as a fatal error (wrapping ErrRegistryLookup); the
// orchestrator halts the run on it.
func (r *reconciler) Reconcile(ctx context.Context, projectDir string, dryRun bool) (bool, error) {
	if r.scope == "" {
		logger.Debug("No private scope configured, skipping dependency reconciliation")
		return false, nil
	}

	manifest, err := entities.ReadManifest(projectDir)
	if err != nil {
		return false, err
	}

	installable, err := r.collectUpdates(ctx, manifest.Dependencies, false)
	if err != nil {
		return false, err
	}

	devUpdates, err := r.collectUpdates(ctx, manifest.DevDependencies, false)
	if err != nil {
		return false, err
	}
	installable = append(installable, devUpdates...)

	peerUpdates, err := r.collectUpdates(ctx, manifest.PeerDependencies, true)
	if err != nil {
		return false, err
	}

	if len(installable) == 0 && len(peerUpdates) == 0 {
		logger.Debugf("All %s dependencies up to date in %s", r.scope, projectDir)
		return false, nil
	}

	if dryRun {
		for _, update := range append(installable, peerUpdates...) {
			logger.Infof(
				"[DRY RUN] Would update %s %s -> %s",
				update.PackageName, update.CurrentConstraint, update.LatestVersion,
			)
		}
		return true, nil
	}

	if len(installable) > 0 {
		args := make([]string, 0, len(installable))
		for _, update := range installable {
			logger.Infof("Updating %s %s -> %s", update.PackageName, update.CurrentConstraint, update.LatestVersion)
			args = append(args, update.InstallArg())
		}
		if installErr := r.manager.Install(ctx, projectDir, args); installErr != nil {
			return false, installErr
		}
	}

	for _, update := range peerUpdates {
		newConstraint := entities.RangePrefix(update.CurrentConstraint) + update.LatestVersion
		logger.Infof("Updating peer %s %s -> %s", update.PackageName, update.CurrentConstraint, newConstraint)
		if editErr := entities.UpdateManifestConstraint(
			projectDir, update.PackageName, update.CurrentConstraint, newConstraint,
		); editErr != nil {
			return false, editErr
		}
	}

	return true, nil
}

// collectUpdates queries the registry for every private-scope entry of
// one dependency block and queues those whose cleaned constraint lags
// the latest version.
func (r *reconciler) collectUpdates(
	ctx context.Context,
	dependencies map[string]string,
	peer bool,
) ([]entities.DependencyUpdate, error) {
	prefix := r.scope + "/"

	names := make([]string, 0, len(dependencies))
	for name := range dependencies {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var updates []entities.DependencyUpdate
	for _, name := range names {
		constraint := dependencies[name]

		latest, err := r.registry.LatestVersion(ctx, name)
		if err != nil {
			return nil, err
		}

		current := entities.CleanVersion(constraint)
		if semver.Compare("v"+current, "v"+latest) == 0 {
			continue
		}

		updates = append(updates, entities.DependencyUpdate{
			PackageName:       name,
			CurrentConstraint: constraint,
			LatestVersion:     latest,
			Peer:              peer,
		})
	}

	return updates, nil
}
