//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushfleet/pushfleet/internal/domain/commands"
	"github.com/pushfleet/pushfleet/internal/domain/entities"
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/translator"
	doubles "github.com/pushfleet/pushfleet/test/infrastructure/repositorydoubles"
)

func writeLocaleTree(t *testing.T, localesDir, lang, file string, tree map[string]any) {
	t.Helper()
	dir := filepath.Join(localesDir, lang)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.MarshalIndent(tree, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), append(data, '\n'), 0o644))
}

func readLocaleTree(t *testing.T, localesDir, lang, file string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(localesDir, lang, file))
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))
	return tree
}

func newTranslateCommand(spy *doubles.SpyTranslatorRepository) *commands.TranslateCommand {
	factory := func(_ translator.Config) domainRepos.TranslatorRepository { return spy }
	return commands.NewTranslateCommand(factory)
}

func TestTranslateCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should create target files with translated entries", func(t *testing.T) {
		t.Parallel()

		// given
		localesDir := t.TempDir()
		writeLocaleTree(t, localesDir, "en", "common.json", map[string]any{
			"greeting": "Hello",
			"menu":     map[string]any{"open": "Open"},
			"blank":    "",
		})
		spy := &doubles.SpyTranslatorRepository{}
		cmd := newTranslateCommand(spy)
		opts := commands.TranslateOptions{
			LocalesDir: localesDir,
			Languages:  []string{"de"},
		}

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
		tree := readLocaleTree(t, localesDir, "de", "common.json")
		assert.Equal(t, "de:Hello", tree["greeting"])
		menu, ok := tree["menu"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "de:Open", menu["open"])
		assert.Equal(t, "", tree["blank"])
	})

	t.Run("should keep existing translations untouched", func(t *testing.T) {
		t.Parallel()

		// given
		localesDir := t.TempDir()
		writeLocaleTree(t, localesDir, "en", "common.json", map[string]any{
			"kept": "Kept", "missing": "Missing",
		})
		writeLocaleTree(t, localesDir, "de", "common.json", map[string]any{
			"kept": "Behalten",
		})
		spy := &doubles.SpyTranslatorRepository{}
		cmd := newTranslateCommand(spy)
		opts := commands.TranslateOptions{LocalesDir: localesDir, Languages: []string{"de"}}

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
		tree := readLocaleTree(t, localesDir, "de", "common.json")
		assert.Equal(t, "Behalten", tree["kept"])
		assert.Equal(t, "de:Missing", tree["missing"])
		require.Len(t, spy.Calls, 1)
		assert.Equal(t, []string{"Missing"}, spy.Calls[0].Texts)
	})

	t.Run("should leave complete files byte-identical on rerun", func(t *testing.T) {
		t.Parallel()

		// given
		localesDir := t.TempDir()
		writeLocaleTree(t, localesDir, "en", "common.json", map[string]any{"key": "Value"})
		cmd := newTranslateCommand(&doubles.SpyTranslatorRepository{})
		opts := commands.TranslateOptions{LocalesDir: localesDir, Languages: []string{"de"}}
		require.NoError(t, cmd.Execute(context.Background(), entities.DefaultSettings(), opts))
		before, err := os.ReadFile(filepath.Join(localesDir, "de", "common.json"))
		require.NoError(t, err)

		// when
		secondSpy := &doubles.SpyTranslatorRepository{}
		rerun := newTranslateCommand(secondSpy)
		rerunErr := rerun.Execute(context.Background(), entities.DefaultSettings(), opts)

		// then
		require.NoError(t, rerunErr)
		after, readErr := os.ReadFile(filepath.Join(localesDir, "de", "common.json"))
		require.NoError(t, readErr)
		assert.Equal(t, before, after)
		assert.Empty(t, secondSpy.Calls)
	})

	t.Run("should chunk batches under the configured limit", func(t *testing.T) {
		t.Parallel()

		// given
		localesDir := t.TempDir()
		writeLocaleTree(t, localesDir, "en", "common.json", map[string]any{
			"a": "A", "b": "B", "c": "C",
		})
		spy := &doubles.SpyTranslatorRepository{}
		cmd := newTranslateCommand(spy)
		opts := commands.TranslateOptions{
			LocalesDir: localesDir,
			Languages:  []string{"de"},
			BatchLimit: 2,
		}

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
		require.Len(t, spy.Calls, 2)
		assert.Len(t, spy.Calls[0].Texts, 2)
		assert.Len(t, spy.Calls[1].Texts, 1)
	})

	t.Run("should never translate into the source language", func(t *testing.T) {
		t.Parallel()

		// given
		localesDir := t.TempDir()
		writeLocaleTree(t, localesDir, "en", "common.json", map[string]any{"key": "Value"})
		spy := &doubles.SpyTranslatorRepository{}
		cmd := newTranslateCommand(spy)
		opts := commands.TranslateOptions{LocalesDir: localesDir, Languages: []string{"en"}}

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
		assert.Empty(t, spy.Calls)
	})

	t.Run("should error when the source directory is empty", func(t *testing.T) {
		t.Parallel()

		// given
		localesDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(localesDir, "en"), 0o755))
		cmd := newTranslateCommand(&doubles.SpyTranslatorRepository{})
		opts := commands.TranslateOptions{LocalesDir: localesDir, Languages: []string{"de"}}

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), opts)

		// then
		require.Error(t, err)
	})
}
