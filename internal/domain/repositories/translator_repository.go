package repositories

import "context"

// TranslatorRepository translates a batch of texts into one target
// language. Implementations are backends (LLM, DeepL, batch endpoint);
// a chain composes them with fallback so translation never halts a run.
type TranslatorRepository interface {
	// Name returns the backend identifier (e.g. "llm", "deepl", "batch").
	Name() string

	// Translate returns one translation per input text, in order.
	Translate(ctx context.Context, texts []string, targetLang string) ([]string, error)
}
