package entities

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ProjectSpec is one entry of the fleet: a project directory plus the
// number of seconds to wait after its release before processing the next
// project (lets the registry index the just-published version).
type ProjectSpec struct {
	Path             string
	PostDelaySeconds int
}

// Name returns the project's directory basename, used as the resume key
// for --starting-project.
func (p ProjectSpec) Name() string {
	return filepath.Base(filepath.Clean(p.Path))
}

// ParseProjectEntry parses a single "path" or "path:delaySeconds" entry.
func ParseProjectEntry(entry string) (ProjectSpec, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return ProjectSpec{}, fmt.Errorf("empty project entry")
	}

	path := entry
	delay := 0

	// Split on the last colon so Windows-style paths stay intact.
	if idx := strings.LastIndex(entry, ":"); idx > 0 {
		rawDelay := entry[idx+1:]
		if parsed, err := strconv.Atoi(rawDelay); err == nil {
			path = entry[:idx]
			delay = parsed
		}
	}

	if delay < 0 {
		return ProjectSpec{}, fmt.Errorf("negative delay in project entry %q", entry)
	}

	return ProjectSpec{Path: path, PostDelaySeconds: delay}, nil
}

// ParseProjectList parses inline "path:delay" entries.
func ParseProjectList(entries []string) ([]ProjectSpec, error) {
	specs := make([]ProjectSpec, 0, len(entries))
	for _, entry := range entries {
		spec, err := ParseProjectEntry(entry)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseProjectsFile reads a newline-delimited projects file. Blank lines
// and lines starting with '#' are ignored.
func ParseProjectsFile(path string) ([]ProjectSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open projects file %q: %w", path, err)
	}
	defer file.Close()

	var specs []ProjectSpec

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		spec, parseErr := ParseProjectEntry(line)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid entry in %q: %w", path, parseErr)
		}
		specs = append(specs, spec)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("failed to read projects file %q: %w", path, scanErr)
	}

	return specs, nil
}
