//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// RunnerCall records a single invocation of Run.
type RunnerCall struct {
	Dir     string
	Command string
	Args    []string
}

// SpyProcessRunner implements repositories.ProcessRunner as a configurable spy.
// Configure Results per full command line ("command arg1 arg2"), then inspect
// Calls to verify behavior. Unconfigured command lines succeed with exit 0.
type SpyProcessRunner struct {
	// --- Run ---
	Results map[string]entities.ProcessResult
	RunErr  error

	// spy: invocations received
	Calls []RunnerCall
}

var _ repositories.ProcessRunner = (*SpyProcessRunner)(nil)

func (r *SpyProcessRunner) Run(
	_ context.Context, dir, command string, args ...string,
) (entities.ProcessResult, error) {
	r.Calls = append(r.Calls, RunnerCall{Dir: dir, Command: command, Args: args})
	if r.RunErr != nil {
		return entities.ProcessResult{}, r.RunErr
	}

	line := strings.TrimSpace(command + " " + strings.Join(args, " "))
	if r.Results != nil {
		if result, ok := r.Results[line]; ok {
			return result, nil
		}
	}
	return entities.ProcessResult{ExitCode: 0}, nil
}

// CommandLines returns every recorded invocation as a flat command line,
// convenient for order assertions.
func (r *SpyProcessRunner) CommandLines() []string {
	lines := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		lines = append(lines, strings.TrimSpace(call.Command+" "+strings.Join(call.Args, " ")))
	}
	return lines
}
