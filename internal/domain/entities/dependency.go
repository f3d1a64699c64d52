package entities

// DependencyUpdate describes one private-scope dependency whose recorded
// constraint lags behind the latest published version.
type DependencyUpdate struct {
	PackageName       string
	CurrentConstraint string
	LatestVersion     string
	Peer              bool
}

// InstallArg returns the package-manager install argument for this update.
func (d DependencyUpdate) InstallArg() string {
	return d.PackageName + "@" + d.LatestVersion
}
