package github

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentx-labs/skilldock/internal/branding"
)

// FetchFirst tries each candidate URL in order and returns the first
// response with a success status and a non-empty body. An empty body is a
// validation failure, not a transport error, and stops the probe: the file
// exists but has nothing in it.
func (c *Client) FetchFirst(urls []string) ([]byte, error) {
	var lastErr error

	for _, target := range urls {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			lastErr = fmt.Errorf("creating request: %w", err)
			continue
		}
		req.Header.Set("User-Agent", branding.UserAgent())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d from %s", resp.StatusCode, target)
			continue
		}
		if len(strings.TrimSpace(string(body))) == 0 {
			return nil, fmt.Errorf("file is empty at %s", target)
		}
		return body, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate URLs")
	}
	return nil, fmt.Errorf("unable to download file: %w", lastErr)
}
