package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
	infraRepos "github.com/pushfleet/pushfleet/internal/infrastructure/repositories"
	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/translator"
)

// sourceLanguage is the locale every other language is derived from.
const sourceLanguage = "en"

// Translate is the interface for the translate command.
type Translate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts TranslateOptions) error
}

// TranslateOptions holds runtime options for one translation run. Flags
// override the corresponding settings-file values.
type TranslateOptions struct {
	LocalesDir string
	Endpoint   string
	LLMHost    string
	LLMPort    int
	APIKey     string
	EnvFile    string
	BatchLimit int
	Languages  []string
	Verbose    bool
}

// TranslateCommand fills the gaps in every target-language locale tree
// from the English source files. Translation is best effort: a backend
// failure degrades to the source text instead of halting the run.
type TranslateCommand struct {
	translatorFactory infraRepos.TranslatorFactory
}

// NewTranslateCommand creates a new TranslateCommand.
func NewTranslateCommand(translatorFactory infraRepos.TranslatorFactory) *TranslateCommand {
	return &TranslateCommand{translatorFactory: translatorFactory}
}

// Execute translates every missing entry of every target language.
func (it *TranslateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts TranslateOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file %q: %w", opts.EnvFile, err)
		}
		logger.Debugf("Loaded environment from %s", opts.EnvFile)
	}

	resolved := resolveTranslation(settings.Translation, opts)

	sourceDir := filepath.Join(opts.LocalesDir, sourceLanguage)
	sourceFiles, err := listLocaleFiles(sourceDir)
	if err != nil {
		return err
	}
	if len(sourceFiles) == 0 {
		return fmt.Errorf("no source locale files found in %s", sourceDir)
	}

	backend := it.translatorFactory(translator.Config{
		Endpoint: resolved.Endpoint,
		LLMHost:  resolved.LLMHost,
		LLMPort:  resolved.LLMPort,
		Model:    resolved.LLMModel,
		DeepLKey: resolved.DeepLKey,
	})
	logger.Infof("Translation backend: %s", backend.Name())

	for _, language := range resolved.Languages {
		if language == sourceLanguage {
			continue
		}
		if langErr := it.translateLanguage(
			ctx, backend, opts.LocalesDir, sourceFiles, language, resolved.BatchLimit,
		); langErr != nil {
			return langErr
		}
	}

	return nil
}

// localeWork pairs one source file with its target's existing tree and
// the entries still missing from it.
type localeWork struct {
	fileName string
	source   map[string]any
	existing map[string]any
	missing  []entities.LocaleEntry
}

// translateLanguage processes every locale file of one target language.
// Files with nothing missing are left untouched so reruns stay
// byte-identical.
func (it *TranslateCommand) translateLanguage(
	ctx context.Context,
	backend domainRepos.TranslatorRepository,
	localesDir string,
	sourceFiles []string,
	language string,
	batchLimit int,
) error {
	targetDir := filepath.Join(localesDir, language)

	work := make([]localeWork, 0, len(sourceFiles))
	totalMissing := 0

	for _, sourcePath := range sourceFiles {
		fileName := filepath.Base(sourcePath)

		source, err := entities.LoadLocaleFile(sourcePath)
		if err != nil {
			return err
		}
		existing, err := entities.LoadLocaleFile(filepath.Join(targetDir, fileName))
		if err != nil {
			return err
		}

		missing := entities.MissingEntries(source, existing)
		totalMissing += len(missing)
		work = append(work, localeWork{
			fileName: fileName,
			source:   source,
			existing: existing,
			missing:  missing,
		})
	}

	if totalMissing == 0 {
		logger.Infof("[%s] Up to date, nothing to translate", language)
		return nil
	}

	logger.Infof("[%s] Translating %d missing entries", language, totalMissing)
	bar := progressbar.Default(int64(totalMissing), language)

	for _, item := range work {
		targetPath := filepath.Join(targetDir, item.fileName)

		if len(item.missing) == 0 {
			// Already complete; skipping the write keeps the file
			// byte-identical across runs.
			if _, statErr := os.Stat(targetPath); statErr == nil {
				continue
			}
		}

		translated, err := translateEntries(ctx, backend, item.missing, language, batchLimit, bar)
		if err != nil {
			return err
		}

		merged := entities.MergeTranslations(item.source, item.existing, translated)

		if mkdirErr := os.MkdirAll(targetDir, 0o755); mkdirErr != nil {
			return fmt.Errorf("failed to create locale directory %q: %w", targetDir, mkdirErr)
		}
		if writeErr := entities.WriteLocaleFile(targetPath, merged); writeErr != nil {
			return writeErr
		}
	}

	return nil
}

// translateEntries sends the missing entries through the backend in
// batchLimit-sized chunks and keys the results by entry path.
func translateEntries(
	ctx context.Context,
	backend domainRepos.TranslatorRepository,
	missing []entities.LocaleEntry,
	language string,
	batchLimit int,
	bar *progressbar.ProgressBar,
) (map[string]string, error) {
	translated := make(map[string]string, len(missing))

	for start := 0; start < len(missing); start += batchLimit {
		end := start + batchLimit
		if end > len(missing) {
			end = len(missing)
		}
		chunk := missing[start:end]

		texts := make([]string, len(chunk))
		for i, entry := range chunk {
			texts[i] = entry.Text
		}

		results, err := backend.Translate(ctx, texts, language)
		if err != nil {
			return nil, fmt.Errorf("translation to %s failed: %w", language, err)
		}
		if len(results) != len(chunk) {
			return nil, errors.New("translation backend returned a mismatched batch")
		}

		for i, entry := range chunk {
			translated[entry.Key] = results[i]
		}
		_ = bar.Add(len(chunk))
	}

	return translated, nil
}

// resolveTranslation layers CLI options over the settings-file values.
func resolveTranslation(
	base entities.TranslationSettings,
	opts TranslateOptions,
) entities.TranslationSettings {
	resolved := base

	if opts.Endpoint != "" {
		resolved.Endpoint = opts.Endpoint
	}
	if opts.LLMHost != "" {
		resolved.LLMHost = opts.LLMHost
	}
	if opts.LLMPort != 0 {
		resolved.LLMPort = opts.LLMPort
	}
	if opts.APIKey != "" {
		resolved.DeepLKey = opts.APIKey
	}
	if opts.BatchLimit > 0 {
		resolved.BatchLimit = opts.BatchLimit
	}
	if len(opts.Languages) > 0 {
		resolved.Languages = opts.Languages
	}

	return resolved
}

// listLocaleFiles returns the JSON files of a locale directory in sorted
// order.
func listLocaleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
