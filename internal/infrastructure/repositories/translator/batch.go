package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// Batch translates through a self-hosted batch translation endpoint that
// accepts a list of texts per request.
type Batch struct {
	endpoint string
	http     *retryablehttp.Client
}

// NewBatch creates the batch-endpoint backend.
func NewBatch(endpoint string) domainRepos.TranslatorRepository {
	return &Batch{
		endpoint: endpoint,
		http:     newRetryingClient(),
	}
}

func (it *Batch) Name() string { return "batch" }

type batchRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"source_lang"`
	TargetLang string   `json:"target_lang"`
}

type batchResponse struct {
	Translations []string `json:"translations"`
}

func (it *Batch) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	body, err := json.Marshal(batchRequest{
		Texts:      texts,
		SourceLang: "en",
		TargetLang: targetLang,
	})
	if err != nil {
		return nil, fmt.Errorf("batch: failed to encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodPost, it.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("batch: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := it.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("batch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("batch: unexpected status %d", resp.StatusCode)
	}

	var parsed batchResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr != nil {
		return nil, fmt.Errorf("batch: failed to parse response: %w", decodeErr)
	}

	if len(parsed.Translations) != len(texts) {
		return nil, fmt.Errorf(
			"batch: got %d translations for %d texts",
			len(parsed.Translations), len(texts),
		)
	}

	return parsed.Translations, nil
}
