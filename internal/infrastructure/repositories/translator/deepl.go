package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// DefaultDeepLURL is the free-tier DeepL v2 endpoint.
const DefaultDeepLURL = "https://api-free.deepl.com/v2/translate"

// DeepL translates through the DeepL v2 HTTP API.
type DeepL struct {
	endpoint string
	apiKey   string
	http     *retryablehttp.Client
}

// NewDeepL creates the DeepL backend. An empty endpoint selects the
// free-tier API host.
func NewDeepL(endpoint, apiKey string) domainRepos.TranslatorRepository {
	if endpoint == "" {
		endpoint = DefaultDeepLURL
	}
	return &DeepL{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     newRetryingClient(),
	}
}

func (it *DeepL) Name() string { return "deepl" }

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate sends the whole batch in one form-encoded request.
func (it *DeepL) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if it.apiKey == "" {
		return nil, fmt.Errorf("deepl: no API key configured")
	}

	form := url.Values{}
	for _, text := range texts {
		form.Add("text", text)
	}
	form.Set("source_lang", "EN")
	form.Set("target_lang", strings.ToUpper(targetLang))

	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodPost, it.endpoint, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("deepl: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+it.apiKey)

	resp, err := it.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepl: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepl: unexpected status %d", resp.StatusCode)
	}

	var parsed deeplResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr != nil {
		return nil, fmt.Errorf("deepl: failed to parse response: %w", decodeErr)
	}

	if len(parsed.Translations) != len(texts) {
		return nil, fmt.Errorf(
			"deepl: got %d translations for %d texts",
			len(parsed.Translations), len(texts),
		)
	}

	results := make([]string, len(texts))
	for i, t := range parsed.Translations {
		results[i] = t.Text
	}
	return results, nil
}
