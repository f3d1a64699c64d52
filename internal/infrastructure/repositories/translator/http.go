// Package translator holds the translation backends and the fallback
// chain composing them. Backends share one bounded-retry HTTP policy:
// a fixed number of attempts with linearly increasing wait.
package translator

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	retryAttempts  = 3
	retryBaseWait  = 2 * time.Second
	requestTimeout = 60 * time.Second
)

// newRetryingClient builds the shared HTTP client: retryAttempts retries
// with a linearly increasing wait between attempts.
func newRetryingClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryAttempts
	client.RetryWaitMin = retryBaseWait
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = nil
	client.Backoff = linearBackoff
	return client
}

// linearBackoff waits base, 2*base, 3*base... capped at max.
func linearBackoff(base, max time.Duration, attempt int, _ *http.Response) time.Duration {
	wait := base * time.Duration(attempt+1)
	if wait > max {
		return max
	}
	return wait
}
