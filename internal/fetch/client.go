// Package fetch retrieves raw CSV resource payloads for the scoring engine.
// A locator is either an http(s) URL or a local file path; both return the
// raw (possibly compressed) bytes, bounded by a download cap.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxDownloadBytes bounds a single resource download. Compressed exports
// expand later under the parser's own character cap, so this only guards the
// transfer itself.
const maxDownloadBytes = 64 << 20

// Client retrieves capture-export resources.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a fetch client with a sane request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns the raw bytes for the given locator.
func (c *Client) Fetch(locator string) ([]byte, error) {
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		return c.fetchURL(locator)
	}
	data, err := os.ReadFile(locator)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", locator, err)
	}
	return data, nil
}

func (c *Client) fetchURL(url string) ([]byte, error) {
	resp, err := c.httpClient.Get(url) //nolint:gosec
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, fmt.Errorf("fetch %s: HTTP %d: %s", url, resp.StatusCode, snippet)
	}
	return body, nil
}
