package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	fetchTimeout    = 10 * time.Second
	maxResponseSize = 2 << 20 // 2MB
	userAgent       = "admit-backend/1.0 (+enrichment)"
)

// Fetcher retrieves a page body as a string.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// HTTPFetcher implements Fetcher with a timeout-bounded, rate-limited HTTP client.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher constructs a fetcher capped at roughly one request per second.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = fetchTimeout
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// Get fetches a URL and returns its body, bounded by the fetcher timeout and size cap.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: http status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("fetch %s: read: %w", url, err)
	}
	return string(body), nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
