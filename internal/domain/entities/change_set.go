package entities

import (
	"path"
	"strings"
)

// ChangeCategory buckets a changed file path for commit-message synthesis.
type ChangeCategory string

const (
	ChangeSource   ChangeCategory = "source"
	ChangeTest     ChangeCategory = "test"
	ChangeConfig   ChangeCategory = "config"
	ChangeDocs     ChangeCategory = "docs"
	ChangeCI       ChangeCategory = "ci"
	ChangeManifest ChangeCategory = "manifest"
	ChangeOther    ChangeCategory = "other"
)

// ChangedPath is one file touched since the last commit (working tree or
// index), with a flag marking newly added files.
type ChangedPath struct {
	Path  string
	Added bool
}

// ChangeSet partitions pending changes by category. Manifest and lockfile
// paths are tracked but never count as meaningful changes.
type ChangeSet struct {
	ByCategory map[ChangeCategory][]ChangedPath
}

// NewChangeSet classifies the given paths into a ChangeSet.
func NewChangeSet(paths []ChangedPath) *ChangeSet {
	set := &ChangeSet{ByCategory: make(map[ChangeCategory][]ChangedPath)}
	for _, p := range paths {
		cat := ClassifyPath(p.Path)
		set.ByCategory[cat] = append(set.ByCategory[cat], p)
	}
	return set
}

// IsEmpty reports whether there are no pending changes at all.
func (c *ChangeSet) IsEmpty() bool {
	for _, paths := range c.ByCategory {
		if len(paths) > 0 {
			return false
		}
	}
	return true
}

// Meaningful returns the number of changed paths outside the
// manifest/lockfile bucket.
func (c *ChangeSet) Meaningful() int {
	total := 0
	for cat, paths := range c.ByCategory {
		if cat == ChangeManifest {
			continue
		}
		total += len(paths)
	}
	return total
}

// HasAddedIn reports whether the category contains newly added files.
func (c *ChangeSet) HasAddedIn(cat ChangeCategory) bool {
	for _, p := range c.ByCategory[cat] {
		if p.Added {
			return true
		}
	}
	return false
}

// ClassifyPath assigns a single repository-relative path to a category.
// Order matters: manifest/lockfile first, then CI, tests, docs, config,
// and finally source by extension.
func ClassifyPath(filePath string) ChangeCategory {
	normalized := strings.ReplaceAll(filePath, "\\", "/")
	base := path.Base(normalized)
	ext := strings.ToLower(path.Ext(base))

	if isManifestOrLockfile(base) {
		return ChangeManifest
	}
	if isCIPath(normalized, base) {
		return ChangeCI
	}
	if isTestPath(normalized, base) {
		return ChangeTest
	}
	if isDocsPath(normalized, ext) {
		return ChangeDocs
	}
	if isConfigPath(base, ext) {
		return ChangeConfig
	}
	if isSourceExt(ext) {
		return ChangeSource
	}
	return ChangeOther
}

func isManifestOrLockfile(base string) bool {
	if base == ManifestFileName {
		return true
	}
	for _, lock := range KnownLockfiles() {
		if base == lock {
			return true
		}
	}
	return false
}

func isCIPath(normalized, base string) bool {
	return strings.HasPrefix(normalized, ".github/") ||
		strings.HasPrefix(normalized, ".circleci/") ||
		strings.Contains(base, ".gitlab-ci") ||
		base == "Jenkinsfile"
}

func isTestPath(normalized, base string) bool {
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	for _, segment := range strings.Split(path.Dir(normalized), "/") {
		if segment == "test" || segment == "tests" || segment == "__tests__" {
			return true
		}
	}
	return false
}

func isDocsPath(normalized, ext string) bool {
	if ext == ".md" || ext == ".mdx" {
		return true
	}
	first, _, _ := strings.Cut(normalized, "/")
	return first == "docs" || first == "doc"
}

func isConfigPath(base, ext string) bool {
	if strings.HasPrefix(base, ".") || strings.Contains(base, ".config.") {
		return true
	}
	switch ext {
	case ".json", ".yaml", ".yml", ".toml", ".ini":
		return true
	}
	return false
}

func isSourceExt(ext string) bool {
	switch ext {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs",
		".vue", ".svelte", ".css", ".scss", ".html":
		return true
	}
	return false
}
