package commands

import (
	"fmt"
	"strings"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// maxExamplePaths caps how many paths are enumerated per category in the
// commit body.
const maxExamplePaths = 5

// commitFooter closes every synthesized commit message.
const commitFooter = "Automated release commit."

// bodyOrder fixes the category enumeration order in the commit body.
//
//nolint:gochecknoglobals // fixed presentation order
var bodyOrder = []entities.ChangeCategory{
	entities.ChangeSource,
	entities.ChangeTest,
	entities.ChangeConfig,
	entities.ChangeDocs,
	entities.ChangeCI,
	entities.ChangeOther,
}

// BuildCommitMessage synthesizes a conventional-commit message for the
// pending change set. Pure string synthesis: no external effects.
func BuildCommitMessage(set *entities.ChangeSet, version string, forced bool) string {
	var sb strings.Builder

	sb.WriteString(commitTitle(set, version, forced))
	sb.WriteString("\n")

	for _, category := range bodyOrder {
		paths := set.ByCategory[category]
		if len(paths) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("\n%s changes:\n", category))
		for i, changed := range paths {
			if i == maxExamplePaths {
				sb.WriteString(fmt.Sprintf("- ...and %d more\n", len(paths)-maxExamplePaths))
				break
			}
			sb.WriteString("- " + changed.Path + "\n")
		}
	}

	sb.WriteString("\n" + commitFooter + "\n")
	return sb.String()
}

// commitTitle picks the title by priority: forced bump, dependency-only,
// source (feat for newly added files, refactor otherwise), tests, config,
// docs, CI, generic fallback.
func commitTitle(set *entities.ChangeSet, version string, forced bool) string {
	if forced {
		return fmt.Sprintf("chore: force release v%s", version)
	}

	if set.Meaningful() == 0 {
		return fmt.Sprintf("chore(deps): update dependencies for v%s", version)
	}

	if len(set.ByCategory[entities.ChangeSource]) > 0 {
		if set.HasAddedIn(entities.ChangeSource) {
			return fmt.Sprintf("feat: add new functionality for v%s", version)
		}
		return fmt.Sprintf("refactor: improve source code for v%s", version)
	}

	if len(set.ByCategory[entities.ChangeTest]) > 0 {
		return fmt.Sprintf("test: improve test coverage for v%s", version)
	}
	if len(set.ByCategory[entities.ChangeConfig]) > 0 {
		return fmt.Sprintf("chore(config): update configuration for v%s", version)
	}
	if len(set.ByCategory[entities.ChangeDocs]) > 0 {
		return fmt.Sprintf("docs: update documentation for v%s", version)
	}
	if len(set.ByCategory[entities.ChangeCI]) > 0 {
		return fmt.Sprintf("ci: update pipeline configuration for v%s", version)
	}

	return fmt.Sprintf("chore: release v%s", version)
}
