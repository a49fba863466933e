package llm

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pdfpeek/pdfpeek/internal/domain"
)

// RetryConfig holds retry behavior for API requests.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// retryable reports whether a status code is worth retrying.
func retryable(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// backoffFor picks the wait before the next attempt, honoring a numeric
// Retry-After header when the server sent one.
func (r RetryConfig) backoffFor(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}

	backoff := r.InitialBackoff << attempt
	if backoff > r.MaxBackoff {
		backoff = r.MaxBackoff
	}
	return backoff
}

// retryWithBackoff wraps an HTTP request with retry logic. Non-retryable
// responses are handed back to the caller untouched.
func (c *Client) retryWithBackoff(ctx context.Context, reqFunc func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := reqFunc()
		if err == nil && resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		var wait time.Duration
		if err != nil {
			lastErr = err
			wait = c.retry.backoffFor(attempt, nil)
		} else {
			if !retryable(resp.StatusCode) {
				return resp, nil
			}
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
			wait = c.retry.backoffFor(attempt, resp)
			resp.Body.Close()
		}

		if attempt == c.retry.MaxRetries {
			break
		}

		c.log.Warn().Err(lastErr).Int("attempt", attempt+1).Dur("backoff", wait).Msg("request failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, domain.APIError(fmt.Sprintf("request failed after %d retries", c.retry.MaxRetries), lastErr)
}
