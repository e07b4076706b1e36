package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultFetchTimeout = 15 * time.Second

// Fetcher performs single GET requests with fixed headers and a
// per-request deadline. No retries, no cookies; redirects follow the
// transport default.
type Fetcher struct {
	client  *http.Client
	headers map[string]string
	timeout time.Duration
}

// NewFetcher wires an HTTP client; nil gets a plain default client.
func NewFetcher(client *http.Client, headers map[string]string, timeout time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{client: client, headers: headers, timeout: timeout}
}

// Fetch issues one GET and returns the response body as text.
// Failures are classified as ErrTimeout, ErrNetwork or *StatusError.
// The deadline cancels the request itself, not just the wait.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	for name, value := range f.headers {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%s: %w", url, ErrTimeout)
		}
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%s: %w", url, ErrTimeout)
		}
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
