package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/agentx-labs/skilldock/internal/agents"
	"github.com/agentx-labs/skilldock/internal/fsguard"
	"github.com/agentx-labs/skilldock/internal/github"
)

// ErrSkillNotFound reports an operation against a skill id with no directory
// under the source root.
var ErrSkillNotFound = errors.New("skill not found")

// Manager installs, refreshes, and deletes skills for one operation. It
// carries the GitHub client so a caller-supplied token stays scoped to the
// manager's lifetime.
type Manager struct {
	client *github.Client
}

// NewManager creates a Manager backed by the given client.
func NewManager(client *github.Client) *Manager {
	return &Manager{client: client}
}

// Install downloads a skill from a URL into a new directory under the
// source root and returns the loaded item. GitHub URLs pull the whole
// directory tree; anything else fetches the core file alone.
func (m *Manager) Install(source *agents.SkillSource, rawURL string) (*Item, error) {
	if err := os.MkdirAll(source.Root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", source.Root, err)
	}

	loc, locErr := github.ParseLocation(rawURL)

	var branches []string
	if locErr == nil {
		branches = m.client.BranchCandidates(loc)
	}

	content, coreFileName, selectedBranch, err := m.fetchCoreFile(source, rawURL, loc, branches)
	if err != nil {
		return nil, err
	}

	metadata := coreMetadata(coreFileName, content)
	name := metadata["name"]
	if name == "" {
		name = github.FallbackName(rawURL, coreFileName)
	}

	dirName := AllocateDir(source.Root, name)
	skillDir := filepath.Join(source.Root, dirName)
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", skillDir, err)
	}

	if loc != nil && locErr == nil {
		// Pin the tree download to the branch the core file came from.
		if selectedBranch != "" {
			branches = promote(branches, selectedBranch)
		}
		if _, err := m.client.DownloadTree(loc, branches, skillDir); err != nil {
			return nil, err
		}
	}

	if err := WriteSourceURL(skillDir, rawURL); err != nil {
		return nil, err
	}
	corePath := filepath.Join(skillDir, coreFileName)
	if err := os.WriteFile(corePath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", coreFileName, err)
	}

	return Load(skillDir, corePath, coreFileName, source)
}

// Refresh re-downloads an installed skill from a URL, overwriting its core
// file and provenance sidecar in place. Supporting files from a GitHub tree
// are re-fetched over the existing directory.
func (m *Manager) Refresh(source *agents.SkillSource, skillID, rawURL string) (*Item, error) {
	skillDir, err := existingSkillDir(source, skillID)
	if err != nil {
		return nil, err
	}

	coreFilePath, coreFileName, ok := FindCoreFile(skillDir, source.CoreFiles)
	if !ok {
		return nil, fmt.Errorf("missing core file in %s", skillDir)
	}

	if loc, locErr := github.ParseLocation(rawURL); locErr == nil {
		branches := m.client.BranchCandidates(loc)
		confirmed, err := m.client.DownloadTree(loc, branches, skillDir)
		if err != nil {
			return nil, err
		}
		data, err := m.client.FileContent(loc.Owner, loc.Repo, loc.FilePath(coreFileName), confirmed)
		if err != nil {
			return nil, err
		}
		content, err := textContent(data)
		if err != nil {
			return nil, err
		}
		if err := WriteSourceURL(skillDir, rawURL); err != nil {
			return nil, err
		}
		if err := os.WriteFile(coreFilePath, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", coreFileName, err)
		}
	} else {
		candidates, err := github.CandidateFileURLs(rawURL, coreFileName)
		if err != nil {
			return nil, err
		}
		data, err := m.client.FetchFirst(candidates)
		if err != nil {
			return nil, err
		}
		content, err := textContent(data)
		if err != nil {
			return nil, err
		}
		if err := WriteSourceURL(skillDir, rawURL); err != nil {
			return nil, err
		}
		if err := os.WriteFile(coreFilePath, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", coreFileName, err)
		}
	}

	return Load(skillDir, coreFilePath, coreFileName, source)
}

// Delete removes an installed skill directory.
func Delete(source *agents.SkillSource, skillID string) error {
	skillDir, err := existingSkillDir(source, skillID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(skillDir); err != nil {
		return fmt.Errorf("deleting skill: %w", err)
	}
	return nil
}

// Tree lists the file tree of an installed skill.
func Tree(source *agents.SkillSource, skillID string) (*TreeNode, error) {
	skillDir, err := existingSkillDir(source, skillID)
	if err != nil {
		return nil, err
	}
	return BuildTree(skillDir)
}

// existingSkillDir resolves a skill id to its directory, requiring that it
// exists and stays inside the source root.
func existingSkillDir(source *agents.SkillSource, skillID string) (string, error) {
	skillDir := filepath.Join(source.Root, skillID)
	if _, err := os.Stat(skillDir); err != nil {
		return "", fmt.Errorf("%w: %s", ErrSkillNotFound, skillID)
	}
	if _, err := fsguard.Within(source.Root, skillDir); err != nil {
		return "", err
	}
	return skillDir, nil
}

// fetchCoreFile tries each candidate core file name until one downloads.
// For GitHub locations every branch candidate is tried per file name; the
// branch that served the file is returned so later fetches can pin to it.
func (m *Manager) fetchCoreFile(source *agents.SkillSource, rawURL string, loc *github.Location, branches []string) (content, coreFileName, branch string, err error) {
	var lastErr error

	for _, fileName := range source.CoreFiles {
		if loc != nil {
			for _, candidate := range branches {
				data, fetchErr := m.client.FileContent(loc.Owner, loc.Repo, loc.FilePath(fileName), candidate)
				if fetchErr != nil {
					lastErr = fetchErr
					continue
				}
				text, textErr := textContent(data)
				if textErr != nil {
					lastErr = textErr
					continue
				}
				return text, fileName, candidate, nil
			}
			continue
		}

		candidates, parseErr := github.CandidateFileURLs(rawURL, fileName)
		if parseErr != nil {
			return "", "", "", parseErr
		}
		data, fetchErr := m.client.FetchFirst(candidates)
		if fetchErr != nil {
			lastErr = fetchErr
			continue
		}
		text, textErr := textContent(data)
		if textErr != nil {
			lastErr = textErr
			continue
		}
		return text, fileName, "", nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("unable to download skill file")
	}
	return "", "", "", lastErr
}

func coreMetadata(coreFileName, content string) map[string]string {
	if filepath.Ext(coreFileName) == ".md" {
		metadata, _ := ParseFrontmatter(content)
		return metadata
	}
	return parseMetadataFile(coreFileName, content)
}

func textContent(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file content is not valid UTF-8")
	}
	return string(data), nil
}

func promote(branches []string, branch string) []string {
	out := []string{branch}
	for _, candidate := range branches {
		if candidate != branch {
			out = append(out, candidate)
		}
	}
	return out
}
