package repositories

import (
	"context"
	"errors"
)

// ErrRegistryLookup marks a failed latest-version query. The orchestrator
// treats it as fatal to the whole run: downstream projects may depend on
// a version that could not be verified.
var ErrRegistryLookup = errors.New("registry lookup failed")

// RegistryRepository resolves the latest published version of a package.
type RegistryRepository interface {
	// LatestVersion returns the latest published version of the package,
	// bypassing any intermediate caches. Failures wrap ErrRegistryLookup.
	LatestVersion(ctx context.Context, packageName string) (string, error)
}
