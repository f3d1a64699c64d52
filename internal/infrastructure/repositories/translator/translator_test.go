//go:build unit

package translator_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushfleet/pushfleet/internal/infrastructure/repositories/translator"
	doubles "github.com/pushfleet/pushfleet/test/infrastructure/repositorydoubles"
)

// llmFromServer points an LLM backend at a test server.
func llmFromServer(t *testing.T, server *httptest.Server) *translator.LLM {
	t.Helper()
	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	backend, ok := translator.NewLLM(parsed.Hostname(), port, "test-model").(*translator.LLM)
	require.True(t, ok)
	return backend
}

func chatCompletion(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestChainTranslate(t *testing.T) {
	t.Parallel()

	t.Run("should use the first backend that succeeds", func(t *testing.T) {
		t.Parallel()

		// given
		failing := &doubles.SpyTranslatorRepository{
			BackendName:  "llm",
			TranslateErr: errors.New("model offline"),
		}
		working := &doubles.SpyTranslatorRepository{BackendName: "deepl"}
		chain := translator.NewChain(failing, working)

		// when
		results, err := chain.Translate(context.Background(), []string{"Hello"}, "de")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"de:Hello"}, results)
		assert.Len(t, failing.Calls, 1)
		assert.Len(t, working.Calls, 1)
	})

	t.Run("should fall back to the source texts when every backend fails", func(t *testing.T) {
		t.Parallel()

		// given
		failing := &doubles.SpyTranslatorRepository{
			TranslateErr: errors.New("model offline"),
		}
		chain := translator.NewChain(failing)

		// when
		results, err := chain.Translate(context.Background(), []string{"Hello", "World"}, "de")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello", "World"}, results)
	})
}

func TestLLMTranslate(t *testing.T) {
	t.Parallel()

	t.Run("should translate each text through chat completions", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			_, _ = w.Write([]byte(chatCompletion("Hallo")))
		}))
		defer server.Close()
		backend := llmFromServer(t, server)

		// when
		results, err := backend.Translate(context.Background(), []string{"Hello"}, "de")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Hallo"}, results)
	})

	t.Run("should accept short translations into multibyte scripts", func(t *testing.T) {
		t.Parallel()

		// given - five runes for a two-rune source, within the ratio
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(chatCompletion("こんにちは")))
		}))
		defer server.Close()
		backend := llmFromServer(t, server)

		// when
		results, err := backend.Translate(context.Background(), []string{"Hi"}, "ja")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"こんにちは"}, results)
	})

	t.Run("should keep the source text when the output balloons", func(t *testing.T) {
		t.Parallel()

		// given - a completion far longer than three times the source
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(chatCompletion(strings.Repeat("explanation ", 20))))
		}))
		defer server.Close()
		backend := llmFromServer(t, server)

		// when
		results, err := backend.Translate(context.Background(), []string{"Hi"}, "de")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Hi"}, results)
	})

	t.Run("should error on blank completions", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(chatCompletion("   ")))
		}))
		defer server.Close()
		backend := llmFromServer(t, server)

		// when
		_, err := backend.Translate(context.Background(), []string{"Hello"}, "de")

		// then
		require.Error(t, err)
	})
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	t.Run("should return short texts unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Hello", translator.TruncateForLog("Hello"))
	})

	t.Run("should cut long multibyte texts on rune boundaries", func(t *testing.T) {
		t.Parallel()

		// given
		text := strings.Repeat("あ", 50)

		// when
		truncated := translator.TruncateForLog(text)

		// then
		assert.Equal(t, strings.Repeat("あ", 40)+"...", truncated)
		assert.True(t, utf8.ValidString(truncated))
	})
}

func TestBatchTranslate(t *testing.T) {
	t.Parallel()

	t.Run("should post the whole batch and return translations in order", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Texts      []string `json:"texts"`
				SourceLang string   `json:"source_lang"`
				TargetLang string   `json:"target_lang"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "en", req.SourceLang)
			assert.Equal(t, "de", req.TargetLang)

			translations := make([]string, len(req.Texts))
			for i, text := range req.Texts {
				translations[i] = "de:" + text
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"translations": translations})
		}))
		defer server.Close()
		backend := translator.NewBatch(server.URL)

		// when
		results, err := backend.Translate(context.Background(), []string{"One", "Two"}, "de")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"de:One", "de:Two"}, results)
	})

	t.Run("should reject mismatched translation counts", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"translations": []string{"only one"}})
		}))
		defer server.Close()
		backend := translator.NewBatch(server.URL)

		// when
		_, err := backend.Translate(context.Background(), []string{"One", "Two"}, "de")

		// then
		require.Error(t, err)
	})
}

func TestDeepLTranslate(t *testing.T) {
	t.Parallel()

	t.Run("should send a form-encoded batch with the auth header", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "DeepL-Auth-Key test-key", r.Header.Get("Authorization"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "EN", r.PostForm.Get("source_lang"))
			assert.Equal(t, "DE", r.PostForm.Get("target_lang"))
			assert.Equal(t, []string{"One", "Two"}, r.PostForm["text"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"translations": []map[string]string{{"text": "Eins"}, {"text": "Zwei"}},
			})
		}))
		defer server.Close()
		backend := translator.NewDeepL(server.URL, "test-key")

		// when
		results, err := backend.Translate(context.Background(), []string{"One", "Two"}, "de")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Eins", "Zwei"}, results)
	})

	t.Run("should refuse to run without an API key", func(t *testing.T) {
		t.Parallel()

		// given
		backend := translator.NewDeepL("http://localhost:1", "")

		// when
		_, err := backend.Translate(context.Background(), []string{"One"}, "de")

		// then
		require.Error(t, err)
	})
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("should always return the fallback chain", func(t *testing.T) {
		t.Parallel()

		// given / when
		backend := translator.Build(translator.Config{LLMHost: "localhost", LLMPort: 11434})

		// then
		assert.Equal(t, "chain", backend.Name())
	})
}
