package github

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotGitHub reports a URL whose host is neither github.com nor the raw
// content host. Callers fall back to a plain HTTP download.
var ErrNotGitHub = errors.New("not a GitHub URL")

// Location identifies a directory inside a GitHub repository.
type Location struct {
	Owner  string
	Repo   string
	Branch string // empty when the URL does not pin a branch
	Path   string // path within the repository, possibly empty
}

// ParseLocation resolves a user-supplied URL into a repository location.
//
// Recognized shapes, in priority order:
//   - raw.githubusercontent.com/{owner}/{repo}/{branch}/{path...} — branch explicit
//   - github.com/{owner}/{repo}/tree|blob/{branch}/{path...} — branch explicit;
//     a blob path's trailing filename is stripped, keeping its directory
//   - github.com/{owner}/{repo}/{path...} — no branch implied
func ParseLocation(rawURL string) (*Location, error) {
	host, segments, err := splitURL(rawURL)
	if err != nil {
		return nil, err
	}

	if host == "raw.githubusercontent.com" {
		if len(segments) < 3 {
			return nil, fmt.Errorf("raw GitHub URL must include owner/repo/branch")
		}
		return &Location{
			Owner:  segments[0],
			Repo:   strings.TrimSuffix(segments[1], ".git"),
			Branch: segments[2],
			Path:   strings.Join(segments[3:], "/"),
		}, nil
	}

	if host != "github.com" {
		return nil, ErrNotGitHub
	}
	if len(segments) < 2 {
		return nil, fmt.Errorf("GitHub URL must include owner and repo")
	}

	loc := &Location{
		Owner: segments[0],
		Repo:  strings.TrimSuffix(segments[1], ".git"),
	}

	if len(segments) >= 4 && (segments[2] == "tree" || segments[2] == "blob") {
		loc.Branch = segments[3]
		loc.Path = strings.Join(segments[4:], "/")
		if segments[2] == "blob" {
			if idx := strings.LastIndex(loc.Path, "/"); idx >= 0 {
				loc.Path = loc.Path[:idx]
			} else {
				loc.Path = ""
			}
		}
		return loc, nil
	}

	loc.Path = strings.Join(segments[2:], "/")
	return loc, nil
}

// FilePath returns the in-repository path of coreFile relative to the
// location, appending it unless the location path already ends with it.
func (l *Location) FilePath(coreFile string) string {
	if l.Path == "" {
		return coreFile
	}
	if strings.HasSuffix(l.Path, coreFile) {
		return l.Path
	}
	return l.Path + "/" + coreFile
}

// CandidateFileURLs expands a user-supplied URL into direct download
// candidates for coreFile, tried in order. GitHub browser URLs without an
// explicit branch expand to one raw URL per guessed default branch.
func CandidateFileURLs(rawURL, coreFile string) ([]string, error) {
	host, segments, err := splitURL(rawURL)
	if err != nil {
		return nil, err
	}

	if host == "raw.githubusercontent.com" {
		return []string{appendFile(rawURL, coreFile)}, nil
	}

	if host == "github.com" {
		if len(segments) < 2 {
			return nil, fmt.Errorf("GitHub URL must include owner and repo")
		}
		owner := segments[0]
		repo := strings.TrimSuffix(segments[1], ".git")

		if len(segments) >= 4 && (segments[2] == "tree" || segments[2] == "blob") {
			branch := segments[3]
			filePath := joinFilePath(strings.Join(segments[4:], "/"), coreFile)
			return []string{rawContentURL(owner, repo, branch, filePath)}, nil
		}

		filePath := joinFilePath(strings.Join(segments[2:], "/"), coreFile)
		return []string{
			rawContentURL(owner, repo, "main", filePath),
			rawContentURL(owner, repo, "master", filePath),
		}, nil
	}

	return []string{appendFile(rawURL, coreFile)}, nil
}

// FallbackName derives a display name from the URL when the fetched content
// carries none: the last path segment, or the one before it when the last is
// the core file itself.
func FallbackName(rawURL, coreFile string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "skill"
	}
	segments := pathSegments(parsed.Path)
	if len(segments) == 0 {
		return "skill"
	}
	last := segments[len(segments)-1]
	if strings.EqualFold(last, coreFile) && len(segments) >= 2 {
		return segments[len(segments)-2]
	}
	return last
}

func splitURL(rawURL string) (host string, segments []string, err error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", nil, fmt.Errorf("URL is required")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "", nil, fmt.Errorf("URL must start with http:// or https://")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", nil, fmt.Errorf("invalid URL %q", rawURL)
	}
	host = strings.TrimPrefix(parsed.Hostname(), "www.")
	return host, pathSegments(parsed.Path), nil
}

func pathSegments(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func joinFilePath(subpath, coreFile string) string {
	if subpath == "" {
		return coreFile
	}
	if strings.HasSuffix(subpath, coreFile) {
		return subpath
	}
	return subpath + "/" + coreFile
}

func appendFile(rawURL, coreFile string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	if strings.HasSuffix(trimmed, coreFile) {
		return trimmed
	}
	return trimmed + "/" + coreFile
}

func rawContentURL(owner, repo, branch, filePath string) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", owner, repo, branch, filePath)
}
