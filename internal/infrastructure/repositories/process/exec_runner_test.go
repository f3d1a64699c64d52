//go:build unit

package process_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/process"
)

func TestExecRunnerRun(t *testing.T) {
	t.Parallel()

	t.Run("should capture stdout and stderr separately", func(t *testing.T) {
		t.Parallel()

		// given
		runner := process.NewExecRunner()

		// when
		result, err := runner.Run(context.Background(), t.TempDir(),
			"sh", "-c", "echo out; echo err >&2")

		// then
		require.NoError(t, err)
		assert.Zero(t, result.ExitCode)
		assert.True(t, result.Succeeded())
		assert.Equal(t, "out\n", result.Stdout)
		assert.Equal(t, "err\n", result.Stderr)
	})

	t.Run("should report non-zero exits through the result", func(t *testing.T) {
		t.Parallel()

		// given
		runner := process.NewExecRunner()

		// when
		result, err := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "exit 3")

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, result.ExitCode)
		assert.False(t, result.Succeeded())
	})

	t.Run("should error when the command cannot be started", func(t *testing.T) {
		t.Parallel()

		// given
		runner := process.NewExecRunner()

		// when
		_, err := runner.Run(context.Background(), t.TempDir(), "definitely-not-a-binary")

		// then
		require.Error(t, err)
	})
}
