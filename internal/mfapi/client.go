// Package mfapi fetches mutual fund NAV history from the mfapi.in JSON API.
package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/fundcagr/internal/model"
)

const (
	// DefaultBaseURL is the public mfapi.in endpoint.
	DefaultBaseURL = "https://api.mfapi.in"
	// DefaultTimeout bounds a single scheme fetch.
	DefaultTimeout = 15 * time.Second
	maxBodySize    = 32 << 20 // 32 MB, long-lived schemes carry decades of daily rows
	maxCodeLen     = 10
)

// Client fetches scheme NAV history.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for baseURL. Empty values fall back to the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ValidSchemeCode reports whether code looks like an AMFI scheme code.
func ValidSchemeCode(code string) bool {
	if code == "" || len(code) > maxCodeLen {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FetchScheme returns the metadata and raw NAV rows for a scheme code.
func (c *Client) FetchScheme(ctx context.Context, code string) (*Scheme, error) {
	code = strings.TrimSpace(code)
	if !ValidSchemeCode(code) {
		return nil, fmt.Errorf("mfapi: scheme code %q: %w", code, model.ErrInvalidInput)
	}

	body, err := c.get(ctx, "/mf/"+code)
	if err != nil {
		return nil, fmt.Errorf("%w (scheme %s)", err, code)
	}

	var s Scheme
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("mfapi: decoding scheme %s: %v: %w", code, err, model.ErrParse)
	}

	// Unknown codes come back as 200 with an empty meta and no rows.
	if s.Meta.SchemeName == "" && len(s.Data) == 0 {
		return nil, fmt.Errorf("mfapi: scheme %s: %w", code, model.ErrNotFound)
	}
	return &s, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("mfapi: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/fundcagr/1.0")

	//nolint:gosec // URL is built from the configured base URL
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mfapi: request failed: %v: %w", err, model.ErrNetwork)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("mfapi: %w", model.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("mfapi: unexpected status %d: %w", resp.StatusCode, model.ErrUpstream)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("mfapi: reading response: %v: %w", err, model.ErrNetwork)
	}
	return body, nil
}
