package skill

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentx-labs/skilldock/internal/agents"
)

// sourceFileName is the provenance sidecar written next to every installed
// or refreshed skill.
const sourceFileName = ".skill-source.json"

// Item is one skill bundle discovered under a source root.
type Item struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Path         string            `json:"path"`
	CoreFile     string            `json:"coreFile"`
	CoreFilePath string            `json:"coreFilePath"`
	SourceURL    string            `json:"sourceUrl,omitempty"`
	SourceID     string            `json:"sourceId"`
	Metadata     map[string]string `json:"metadata"`
	Body         string            `json:"body"`
	LastModified int64             `json:"lastModified,omitempty"`
}

// Load reads one skill from its directory. The core file's metadata supplies
// name and description; the directory name is the identifier.
func Load(skillDir, coreFilePath, coreFileName string, source *agents.SkillSource) (*Item, error) {
	data, err := os.ReadFile(coreFilePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", coreFilePath, err)
	}
	raw := string(data)

	var metadata map[string]string
	var body string
	if strings.HasSuffix(coreFileName, ".md") {
		metadata, body = ParseFrontmatter(raw)
	} else {
		metadata = parseMetadataFile(coreFileName, raw)
		body = raw
	}

	dirName := filepath.Base(skillDir)

	name := metadata["name"]
	if strings.TrimSpace(name) == "" {
		name = dirName
	}
	description := metadata["description"]
	if strings.TrimSpace(description) == "" && strings.HasSuffix(coreFileName, ".md") {
		description = ExtractDescription(body)
	}

	return &Item{
		ID:           dirName,
		Name:         name,
		Description:  description,
		Path:         skillDir,
		CoreFile:     coreFileName,
		CoreFilePath: coreFilePath,
		SourceURL:    ReadSourceURL(skillDir),
		SourceID:     source.ID,
		Metadata:     metadata,
		Body:         body,
		LastModified: lastModified(skillDir, coreFilePath),
	}, nil
}

// Scan lists the skills under a source root, sorted by name
// case-insensitively. Directories without a recognizable core file are
// skipped, as are entries that fail to load.
func Scan(source *agents.SkillSource) []Item {
	var skills []Item

	entries, err := os.ReadDir(source.Root)
	if err != nil {
		return skills
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillDir := filepath.Join(source.Root, entry.Name())
		corePath, coreName, ok := FindCoreFile(skillDir, source.CoreFiles)
		if !ok {
			continue
		}
		item, err := Load(skillDir, corePath, coreName, source)
		if err != nil {
			continue
		}
		skills = append(skills, *item)
	}

	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i].Name) < strings.ToLower(skills[j].Name)
	})
	return skills
}

// FindCoreFile probes the candidate core file names in order and returns the
// first that exists as a regular file.
func FindCoreFile(skillDir string, coreFiles []string) (path, name string, ok bool) {
	for _, file := range coreFiles {
		candidate := filepath.Join(skillDir, file)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, file, true
		}
	}
	return "", "", false
}

// ReadSourceURL returns the originating URL recorded in the skill's sidecar,
// or empty when absent or unreadable.
func ReadSourceURL(skillDir string) string {
	data, err := os.ReadFile(filepath.Join(skillDir, sourceFileName))
	if err != nil {
		return ""
	}
	var sidecar struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &sidecar); err != nil {
		return ""
	}
	return sidecar.URL
}

// WriteSourceURL records the originating URL in the skill's sidecar. An
// empty URL writes nothing.
func WriteSourceURL(skillDir, url string) error {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil
	}
	data, err := json.MarshalIndent(map[string]string{"url": trimmed}, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing source sidecar: %w", err)
	}
	path := filepath.Join(skillDir, sourceFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// lastModified prefers the SKILL.md mtime and falls back to the core file.
func lastModified(skillDir, coreFilePath string) int64 {
	info, err := os.Stat(filepath.Join(skillDir, "SKILL.md"))
	if err != nil {
		info, err = os.Stat(coreFilePath)
		if err != nil {
			return 0
		}
	}
	return info.ModTime().Unix()
}
