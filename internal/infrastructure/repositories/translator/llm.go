package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// maxLengthRatio discards LLM output that ballooned past the source
// length; models occasionally answer with explanations instead of a
// translation, and those must never reach a locale file.
const maxLengthRatio = 3.0

// LLM translates through a local OpenAI-compatible chat-completions
// endpoint (e.g. an Ollama or llama.cpp server).
type LLM struct {
	baseURL string
	model   string
	http    *retryablehttp.Client
}

// NewLLM creates the LLM backend for the given host and port.
func NewLLM(host string, port int, model string) domainRepos.TranslatorRepository {
	return &LLM{
		baseURL: fmt.Sprintf("http://%s:%d/v1/chat/completions", host, port),
		model:   model,
		http:    newRetryingClient(),
	}
}

func (it *LLM) Name() string { return "llm" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Translate translates each text individually. Output longer than
// maxLengthRatio times the source is discarded in favor of the original
// source text.
func (it *LLM) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	results := make([]string, len(texts))

	for i, text := range texts {
		translated, err := it.translateOne(ctx, text, targetLang)
		if err != nil {
			return nil, fmt.Errorf("llm translation to %s failed: %w", targetLang, err)
		}

		// Rune counts, not bytes: CJK and other multibyte scripts would
		// otherwise trip the guard on every valid translation.
		sourceRunes := utf8.RuneCountInString(text)
		translatedRunes := utf8.RuneCountInString(translated)
		if float64(translatedRunes) > maxLengthRatio*float64(sourceRunes) {
			logger.Warnf(
				"LLM output for %q is %d runes against %d source runes, keeping source text",
				truncateForLog(text), translatedRunes, sourceRunes,
			)
			translated = text
		}

		results[i] = translated
	}

	return results, nil
}

func (it *LLM) translateOne(ctx context.Context, text, targetLang string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following user interface string from English to %s. "+
			"Keep placeholders like {{name}} and %%s untouched. "+
			"Reply with the translation only, no quotes and no explanations.",
		targetLang,
	)

	body, err := json.Marshal(chatRequest{
		Model: it.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodPost, it.baseURL, bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := it.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr != nil {
		return "", fmt.Errorf("failed to parse response: %w", decodeErr)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	translated := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("blank completion")
	}

	return translated, nil
}

func truncateForLog(text string) string {
	const limit = 40
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
