package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// ExecRunner runs external commands with exec.CommandContext and captures
// stdout/stderr separately into a typed result.
type ExecRunner struct{}

// NewExecRunner creates the default process runner.
func NewExecRunner() repositories.ProcessRunner {
	return &ExecRunner{}
}

// Run executes the command in the given directory. A non-zero exit code
// is reported through the result, not as an error; errors are reserved
// for commands that could not be started at all.
func (it *ExecRunner) Run(
	ctx context.Context,
	dir, command string,
	args ...string,
) (entities.ProcessResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := entities.ProcessResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, fmt.Errorf("failed to run %s: %w", command, err)
}
