package translator

import (
	"context"

	logger "github.com/sirupsen/logrus"

	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// Chain tries each backend in order and, when every backend fails,
// returns the original source texts. Translation never halts a run.
type Chain struct {
	backends []domainRepos.TranslatorRepository
}

// NewChain composes backends with fallback semantics.
func NewChain(backends ...domainRepos.TranslatorRepository) domainRepos.TranslatorRepository {
	return &Chain{backends: backends}
}

func (it *Chain) Name() string { return "chain" }

func (it *Chain) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	for _, backend := range it.backends {
		results, err := backend.Translate(ctx, texts, targetLang)
		if err == nil {
			return results, nil
		}
		logger.Warnf("Translator %q failed for %s: %v", backend.Name(), targetLang, err)
	}

	logger.Warnf(
		"All translators failed for %s, keeping %d source texts",
		targetLang, len(texts),
	)

	fallback := make([]string, len(texts))
	copy(fallback, texts)
	return fallback, nil
}
