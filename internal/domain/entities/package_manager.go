package entities

// PackageManager identifies which tool owns a project, derived once per
// project from lockfile presence.
type PackageManager string

const (
	PackageManagerBun  PackageManager = "bun"
	PackageManagerPnpm PackageManager = "pnpm"
	PackageManagerYarn PackageManager = "yarn"
	PackageManagerNpm  PackageManager = "npm"
)

// Lockfiles returns the lockfile names owned by this package manager.
func (p PackageManager) Lockfiles() []string {
	switch p {
	case PackageManagerBun:
		return []string{"bun.lock", "bun.lockb"}
	case PackageManagerPnpm:
		return []string{"pnpm-lock.yaml"}
	case PackageManagerYarn:
		return []string{"yarn.lock"}
	case PackageManagerNpm:
		return []string{"package-lock.json"}
	default:
		return nil
	}
}

// KnownLockfiles lists every lockfile name across all supported package
// managers, used to exclude lockfile churn from change accounting.
func KnownLockfiles() []string {
	return []string{
		"bun.lock", "bun.lockb",
		"pnpm-lock.yaml",
		"yarn.lock",
		"package-lock.json",
	}
}
