//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// TranslateCall records a single invocation of Translate.
type TranslateCall struct {
	Texts      []string
	TargetLang string
}

// SpyTranslatorRepository implements repositories.TranslatorRepository as a
// configurable spy. By default every text translates to "<lang>:<text>".
type SpyTranslatorRepository struct {
	// --- identity ---
	BackendName string

	// --- Translate ---
	Translations map[string]string // source text -> translation
	TranslateErr error

	// spy: calls received
	Calls []TranslateCall
}

var _ repositories.TranslatorRepository = (*SpyTranslatorRepository)(nil)

func (t *SpyTranslatorRepository) Name() string {
	if t.BackendName == "" {
		return "spy"
	}
	return t.BackendName
}

func (t *SpyTranslatorRepository) Translate(
	_ context.Context, texts []string, targetLang string,
) ([]string, error) {
	t.Calls = append(t.Calls, TranslateCall{Texts: texts, TargetLang: targetLang})
	if t.TranslateErr != nil {
		return nil, t.TranslateErr
	}

	results := make([]string, len(texts))
	for i, text := range texts {
		if translated, ok := t.Translations[text]; ok {
			results[i] = translated
			continue
		}
		results[i] = targetLang + ":" + text
	}
	return results, nil
}
