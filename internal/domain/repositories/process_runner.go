package repositories

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// ProcessRunner is the single collaborator through which external CLIs
// (npm, yarn, pnpm, bun, npx) are invoked. It returns a typed result so
// failure handling branches on exit codes, not captured output.
type ProcessRunner interface {
	Run(ctx context.Context, dir, command string, args ...string) (entities.ProcessResult, error)
}
