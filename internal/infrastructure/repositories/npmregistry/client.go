// Package npmregistry queries an npm-compatible registry for the latest
// published version of a package.
package npmregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

const lookupTimeout = 15 * time.Second

// Client resolves latest versions against one registry base URL.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewClient creates a registry client. Lookups do not retry: a failed
// lookup is fatal to the run by policy, so retrying only delays the halt.
func NewClient(baseURL string) domainRepos.RegistryRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.HTTPClient.Timeout = lookupTimeout
	client.Logger = nil

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    client,
	}
}

type packumentDist struct {
	Version string `json:"version"`
}

// LatestVersion fetches the "latest" dist-tag for the package, sending
// cache-bypass headers so a just-published version is never missed due to
// a stale intermediate cache.
func (it *Client) LatestVersion(ctx context.Context, packageName string) (string, error) {
	// Scoped names keep their @ but escape the scope separator.
	escaped := url.PathEscape(packageName)
	lookupURL := fmt.Sprintf("%s/%s/latest", it.baseURL, escaped)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domainRepos.ErrRegistryLookup, packageName, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := it.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domainRepos.ErrRegistryLookup, packageName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"%w: %s: unexpected status %d",
			domainRepos.ErrRegistryLookup, packageName, resp.StatusCode,
		)
	}

	var dist packumentDist
	if decodeErr := json.NewDecoder(resp.Body).Decode(&dist); decodeErr != nil {
		return "", fmt.Errorf("%w: %s: %v", domainRepos.ErrRegistryLookup, packageName, decodeErr)
	}

	if dist.Version == "" {
		return "", fmt.Errorf("%w: %s: empty version in response", domainRepos.ErrRegistryLookup, packageName)
	}

	return dist.Version, nil
}
