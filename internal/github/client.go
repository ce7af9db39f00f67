package github

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/agentx-labs/skilldock/internal/branding"
)

const defaultAPIBase = "https://api.github.com"

// Client talks to the GitHub API. The zero-value token means anonymous
// requests; construction resolves the token once so a caller-supplied
// credential never outlives the operation it was passed for.
type Client struct {
	httpClient *http.Client
	apiBase    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIBase overrides the GitHub API base URL (useful for testing).
func WithAPIBase(base string) Option {
	return func(cl *Client) {
		cl.apiBase = base
	}
}

// WithToken sets the bearer token sent on API requests.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    defaultAPIBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveToken picks the token to use for one operation: an explicit
// override first, then the SKILLDOCK_GITHUB_TOKEN, GITHUB_TOKEN, and
// GH_TOKEN environment slots, first non-empty wins.
func ResolveToken(override string) string {
	if override != "" {
		return override
	}
	for _, name := range []string{branding.EnvVar("GITHUB_TOKEN"), "GITHUB_TOKEN", "GH_TOKEN"} {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// getAPI performs an authenticated GET against the GitHub API and returns
// the response body for a 200 status.
func (c *Client) getAPI(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.UserAgent())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("GitHub API rate limit exceeded. Set %s for higher limits", branding.EnvVar("GITHUB_TOKEN"))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
