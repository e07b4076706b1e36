package declension

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"WordTracker/internal/domain"
	"WordTracker/internal/ports"
)

// Client talks to an external morphology service that resolves
// vocative forms the local rule table cannot derive.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.DeclensionLookup = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup asks the service for the vocatives of a word. Unrecognized
// words come back with Found=false and no error.
func (c *Client) Lookup(ctx context.Context, word string) (domain.LookupResult, error) {
	payload := map[string]any{"word": word}

	var resp struct {
		Found       bool   `json:"found"`
		Vocative    string `json:"vocative"`
		VocativeAlt string `json:"vocative_alt"`
	}
	if err := c.post(ctx, "/declension", payload, &resp); err != nil {
		return domain.LookupResult{}, err
	}

	return domain.LookupResult{
		Found:       resp.Found,
		Vocative:    resp.Vocative,
		VocativeAlt: resp.VocativeAlt,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}
