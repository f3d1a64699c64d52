package translator

import (
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// Config selects and parameterizes the backend chain for one run.
type Config struct {
	Endpoint string // self-hosted batch endpoint; takes precedence when set
	LLMHost  string
	LLMPort  int
	Model    string
	DeepLKey string
}

// Build assembles the backend chain: a configured batch endpoint is used
// alone, otherwise the LLM backend with DeepL as fallback. The chain
// itself falls back to the original text when every backend fails.
func Build(cfg Config) domainRepos.TranslatorRepository {
	if cfg.Endpoint != "" {
		return NewChain(NewBatch(cfg.Endpoint))
	}

	var backends []domainRepos.TranslatorRepository
	if cfg.LLMHost != "" {
		backends = append(backends, NewLLM(cfg.LLMHost, cfg.LLMPort, cfg.Model))
	}
	if cfg.DeepLKey != "" {
		backends = append(backends, NewDeepL("", cfg.DeepLKey))
	}

	return NewChain(backends...)
}
