package entities

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ManifestFileName is the project's dependency/script declaration file.
const ManifestFileName = "package.json"

// Manifest is the parsed view of a project's package.json. Only the fields
// the pipeline acts on are mapped; everything else is left untouched on
// disk (edits happen through targeted text replacement, never re-marshal).
type Manifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Scripts          map[string]string `json:"scripts"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	Workspaces       []string          `json:"workspaces"`
}

// ReadManifest loads and parses the manifest of the given project directory.
func ReadManifest(projectDir string) (*Manifest, error) {
	path := filepath.Join(projectDir, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var manifest Manifest
	if unmarshalErr := json.Unmarshal(data, &manifest); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, unmarshalErr)
	}

	return &manifest, nil
}

// HasScript reports whether the manifest declares the given script.
func (m *Manifest) HasScript(name string) bool {
	_, ok := m.Scripts[name]
	return ok
}

// CleanVersion strips the leading range prefix (^ or ~) from a version
// constraint, leaving the bare version for comparison.
func CleanVersion(constraint string) string {
	return strings.TrimLeft(constraint, "^~")
}

// RangePrefix returns the leading ^ or ~ of a constraint, or "".
func RangePrefix(constraint string) string {
	if strings.HasPrefix(constraint, "^") || strings.HasPrefix(constraint, "~") {
		return constraint[:1]
	}
	return ""
}

// UpdateManifestConstraint rewrites a single dependency constraint in the
// manifest file by targeted text replacement, preserving the file's
// formatting. Used for peerDependencies, which cannot be installed through
// the package manager.
func UpdateManifestConstraint(projectDir, packageName, oldConstraint, newConstraint string) error {
	path := filepath.Join(projectDir, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Whitespace around the colon varies with the formatter that wrote
	// the file, so the match tolerates it and the original separator is
	// kept on rewrite.
	pattern := regexp.MustCompile(
		regexp.QuoteMeta(fmt.Sprintf("%q", packageName)) +
			`(\s*:\s*)` +
			regexp.QuoteMeta(fmt.Sprintf("%q", oldConstraint)),
	)

	content := string(data)
	match := pattern.FindStringSubmatchIndex(content)
	if match == nil {
		return fmt.Errorf(
			"constraint %q: %q not found in %s", packageName, oldConstraint, path,
		)
	}

	separator := content[match[2]:match[3]]
	content = content[:match[0]] +
		fmt.Sprintf("%q%s%q", packageName, separator, newConstraint) +
		content[match[1]:]

	info, statErr := os.Stat(path)
	if statErr != nil {
		return fmt.Errorf("failed to stat %s: %w", path, statErr)
	}

	if writeErr := os.WriteFile(path, []byte(content), info.Mode()); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}

	return nil
}
