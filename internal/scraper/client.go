// Package scraper retrieves gazette listings, detail pages, and PDFs.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gacetabo/internal/config"
)

// Client errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrNoPDFURL             = errors.New("document has no PDF URL")
	ErrCorruptPDF           = errors.New("downloaded PDF is too small")
)

// maxBodyBytes bounds response reads (listing pages and PDFs alike).
const maxBodyBytes = 32 << 20

// Client is an HTTP client with config-driven retry logic.
type Client struct {
	httpClient *http.Client
	retry      *config.RetryPolicy
	userAgent  string
}

// NewClient creates a client with the given retry policy.
func NewClient(retry *config.RetryPolicy, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: retry.GetTimeout(),
		},
		retry:     retry,
		userAgent: userAgent,
	}
}

// Fetch retrieves a URL and returns the body as a string.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	body, err := c.FetchBytes(ctx, url)

	return string(body), err
}

// FetchBytes retrieves a URL with retries and exponential backoff. Only
// transport errors and retryable status codes (429, 503, 504, 408) are
// retried.
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.retry.GetRetryDelay(attempt)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, c.retry.MaxAttempts, err)

			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()

			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if !isRetryableStatus(resp.StatusCode) {
				return nil, lastErr
			}

			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

		closeErr := resp.Body.Close()

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)

			continue
		}

		if closeErr != nil {
			return nil, fmt.Errorf("failed to close response body: %w", closeErr)
		}

		return body, nil
	}

	return nil, lastErr
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable, // 503
		http.StatusGatewayTimeout,  // 504
		http.StatusTooManyRequests, // 429
		http.StatusRequestTimeout:  // 408
		return true
	}

	return false
}
