package github

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ContentEntry is one node in a repository directory listing.
type ContentEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

type contentFile struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

// ListContents lists the entries at a repository path on a branch. The API
// returns an array for directories and a single object for files; both are
// normalized to a slice.
func (c *Client) ListContents(owner, repo, path, branch string) ([]ContentEntry, error) {
	body, err := c.getAPI(c.contentsURL(owner, repo, path, branch))
	if err != nil {
		return nil, fmt.Errorf("reading contents of %s: %w", path, err)
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var entries []ContentEntry
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, fmt.Errorf("parsing contents listing: %w", err)
		}
		return entries, nil
	}

	var entry ContentEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("parsing contents entry: %w", err)
	}
	return []ContentEntry{entry}, nil
}

// FileContent fetches one file's bytes. Inline base64 content is decoded
// directly; otherwise the content-identifier (blob sha) is used for a
// secondary raw fetch.
func (c *Client) FileContent(owner, repo, path, branch string) ([]byte, error) {
	body, err := c.getAPI(c.contentsURL(owner, repo, path, branch))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var file contentFile
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("parsing file response: %w", err)
	}

	if file.Content != "" {
		if file.Encoding != "" && file.Encoding != "base64" {
			return nil, fmt.Errorf("unsupported content encoding %q", file.Encoding)
		}
		return decodeBase64Payload(file.Content)
	}
	if file.SHA != "" {
		return c.BlobContent(owner, repo, file.SHA)
	}
	return nil, fmt.Errorf("missing content in file response for %s", path)
}

// BlobContent fetches raw file bytes by content identifier.
func (c *Client) BlobContent(owner, repo, sha string) ([]byte, error) {
	body, err := c.getAPI(fmt.Sprintf("%s/repos/%s/%s/git/blobs/%s", c.apiBase, owner, repo, sha))
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", sha, err)
	}

	var blob contentFile
	if err := json.Unmarshal(body, &blob); err != nil {
		return nil, fmt.Errorf("parsing blob response: %w", err)
	}
	if blob.Encoding != "" && blob.Encoding != "base64" {
		return nil, fmt.Errorf("unsupported blob encoding %q", blob.Encoding)
	}
	if blob.Content == "" {
		return []byte{}, nil
	}
	return decodeBase64Payload(blob.Content)
}

// DownloadTree downloads the directory at the location into destDir, trying
// each branch candidate in order. The first branch that succeeds end-to-end
// is returned so follow-up fetches can pin to it. A failure partway through
// leaves already-written files in place.
func (c *Client) DownloadTree(loc *Location, branches []string, destDir string) (string, error) {
	var lastErr error
	for _, branch := range branches {
		if err := c.DownloadDirectory(loc, branch, destDir); err != nil {
			lastErr = err
			continue
		}
		return branch, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no branch candidates")
	}
	return "", fmt.Errorf("downloading directory tree: %w", lastErr)
}

// DownloadDirectory fetches the directory subtree at the location on one
// branch, writing files under destDir. The walk uses an explicit worklist so
// pathologically deep trees cannot exhaust the stack. Unknown entry kinds
// (submodules, symlinks) are skipped.
func (c *Client) DownloadDirectory(loc *Location, branch, destDir string) error {
	type pending struct {
		repoPath string
		dest     string
	}
	worklist := []pending{{repoPath: loc.Path, dest: destDir}}

	for len(worklist) > 0 {
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if err := os.MkdirAll(item.dest, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", item.dest, err)
		}

		entries, err := c.ListContents(loc.Owner, loc.Repo, item.repoPath, branch)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			switch entry.Type {
			case "dir":
				worklist = append(worklist, pending{
					repoPath: entry.Path,
					dest:     filepath.Join(item.dest, entry.Name),
				})
			case "file":
				var data []byte
				if entry.SHA != "" {
					// Blob fetch skips a second contents round trip.
					data, err = c.BlobContent(loc.Owner, loc.Repo, entry.SHA)
				} else {
					data, err = c.FileContent(loc.Owner, loc.Repo, entry.Path, branch)
				}
				if err != nil {
					return err
				}
				if err := writeFile(filepath.Join(item.dest, entry.Name), data); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *Client) contentsURL(owner, repo, path, branch string) string {
	if path == "" {
		return fmt.Sprintf("%s/repos/%s/%s/contents?ref=%s", c.apiBase, owner, repo, url.QueryEscape(branch))
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s", c.apiBase, owner, repo, path, url.QueryEscape(branch))
}

func decodeBase64Payload(content string) ([]byte, error) {
	cleaned := strings.ReplaceAll(content, "\n", "")
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
