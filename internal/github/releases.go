package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/agentx-labs/skilldock/internal/branding"
)

// Release is one published release of a repository.
type Release struct {
	TagName   string    `json:"tag_name"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// LatestRelease fetches the latest release of an "owner/repo" repository.
func (c *Client) LatestRelease(repo string) (*Release, error) {
	return c.fetchRelease(fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, repo))
}

// ReleaseByTag fetches a release by tag, tolerating a missing "v" prefix.
func (c *Client) ReleaseByTag(repo, tag string) (*Release, error) {
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	return c.fetchRelease(fmt.Sprintf("%s/repos/%s/releases/tags/%s", c.apiBase, repo, tag))
}

func (c *Client) fetchRelease(url string) (*Release, error) {
	body, err := c.getAPI(url)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &release, nil
}

// DownloadAsset streams a release asset to destPath. Progress percentages go
// to progress when it is non-nil and the response carries a length.
func (c *Client) DownloadAsset(asset *Asset, destPath string, progress io.Writer) error {
	req, err := http.NewRequest(http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer f.Close()

	total := resp.ContentLength
	var written int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("writing download: %w", writeErr)
			}
			written += int64(n)
			if progress != nil && total > 0 {
				percent := int(written * 100 / total)
				if percent != lastPercent {
					fmt.Fprintf(progress, "\rDownloading... %d%%", percent)
					lastPercent = percent
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading download stream: %w", readErr)
		}
	}
	if progress != nil && total > 0 {
		fmt.Fprintln(progress)
	}
	return nil
}
