//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// ScriptCall records a single invocation of Run or Exec.
type ScriptCall struct {
	Dir    string
	Script string
	Args   []string
}

// SpyPackageManagerRepository implements repositories.PackageManagerRepository
// as a configurable spy. Unconfigured scripts succeed with exit 0.
type SpyPackageManagerRepository struct {
	// --- identity ---
	ManagerKind entities.PackageManager

	// --- Install ---
	InstallErr error
	Installed  [][]string

	// --- Run ---
	RunResults map[string]entities.ProcessResult // script -> result
	RunErr     error
	RunCalls   []ScriptCall

	// --- Exec ---
	ExecResults map[string]entities.ProcessResult // command -> result
	ExecErr     error
	ExecCalls   []ScriptCall

	// --- BumpPatch ---
	BumpErr   error
	BumpCalls []string
}

var _ repositories.PackageManagerRepository = (*SpyPackageManagerRepository)(nil)

func (m *SpyPackageManagerRepository) Kind() entities.PackageManager {
	if m.ManagerKind == "" {
		return entities.PackageManagerNpm
	}
	return m.ManagerKind
}

func (m *SpyPackageManagerRepository) Install(
	_ context.Context, _ string, packages []string,
) error {
	m.Installed = append(m.Installed, packages)
	return m.InstallErr
}

func (m *SpyPackageManagerRepository) Run(
	_ context.Context, projectDir, script string, args ...string,
) (entities.ProcessResult, error) {
	m.RunCalls = append(m.RunCalls, ScriptCall{Dir: projectDir, Script: script, Args: args})
	if m.RunErr != nil {
		return entities.ProcessResult{}, m.RunErr
	}
	if result, ok := m.RunResults[script]; ok {
		return result, nil
	}
	return entities.ProcessResult{ExitCode: 0}, nil
}

func (m *SpyPackageManagerRepository) Exec(
	_ context.Context, projectDir, command string, args ...string,
) (entities.ProcessResult, error) {
	m.ExecCalls = append(m.ExecCalls, ScriptCall{Dir: projectDir, Script: command, Args: args})
	if m.ExecErr != nil {
		return entities.ProcessResult{}, m.ExecErr
	}
	if result, ok := m.ExecResults[command]; ok {
		return result, nil
	}
	return entities.ProcessResult{ExitCode: 0}, nil
}

func (m *SpyPackageManagerRepository) BumpPatch(_ context.Context, projectDir string) error {
	m.BumpCalls = append(m.BumpCalls, projectDir)
	return m.BumpErr
}
