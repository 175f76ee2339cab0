// Package amfi downloads and parses the AMFI NAVAll.txt market-wide NAV dump.
package amfi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/fundcagr/internal/model"
)

const (
	// DefaultURL is the public AMFI dump location.
	DefaultURL = "https://www.amfiindia.com/spages/NAVAll.txt"
	// DefaultTimeout bounds the full download.
	DefaultTimeout = 60 * time.Second
)

// Client downloads the NAV dump.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for url. Empty values fall back to the defaults.
func NewClient(url string, timeout time.Duration) *Client {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{url: url, timeout: timeout, http: &http.Client{Timeout: timeout}}
}

// URL returns the dump location.
func (c *Client) URL() string { return c.url }

// FetchNAVAll downloads the dump. The caller must close the returned body.
func (c *Client) FetchNAVAll(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("amfi: creating request: %w", err)
	}
	req.Header.Set("User-Agent", "github.com/theirongolddev/fundcagr/1.0")

	//nolint:gosec // URL is configured by the local user
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amfi: request failed: %v: %w", err, model.ErrNetwork)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("amfi: unexpected status %d: %w", resp.StatusCode, model.ErrUpstream)
	}
	return resp.Body, nil
}

// Download fetches and parses the dump in one step.
func (c *Client) Download(ctx context.Context) (ParseResult, error) {
	body, err := c.FetchNAVAll(ctx)
	if err != nil {
		return ParseResult{}, err
	}
	defer func() { _ = body.Close() }()
	return Parse(body)
}
