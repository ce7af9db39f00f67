package skill

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ParseFrontmatter splits a markdown document into its YAML frontmatter and
// body. A document without a complete "---" envelope yields no metadata and
// the raw text as body. Frontmatter values are flattened to strings; nested
// structures are skipped. Frontmatter that is not valid YAML is still mined
// line by line for "key: value" pairs, so hand-written files with unquoted
// colons in values keep their metadata.
func ParseFrontmatter(raw string) (map[string]string, string) {
	metadata := map[string]string{}
	lines := strings.Split(raw, "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return metadata, raw
	}

	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		return metadata, raw
	}

	block := strings.Join(lines[1:closeIdx], "\n")
	body := strings.TrimLeft(strings.Join(lines[closeIdx+1:], "\n"), "\n")

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(block), &parsed); err != nil {
		return lineMetadata(block), body
	}
	for key, value := range parsed {
		if s, ok := scalarString(value); ok {
			metadata[key] = s
		}
	}
	return metadata, body
}

// lineMetadata splits each line on its first colon and keeps the trimmed
// key/value pair, skipping lines with no colon or an empty key.
func lineMetadata(block string) map[string]string {
	metadata := map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		metadata[key] = strings.TrimSpace(value)
	}
	return metadata
}

// ExtractDescription returns the first non-empty, non-heading line of a
// markdown body.
func ExtractDescription(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed
	}
	return ""
}

// parseMetadataFile extracts flat string metadata from a structured core
// file (YAML or JSON manifest).
func parseMetadataFile(name, raw string) map[string]string {
	metadata := map[string]string{}

	var parsed map[string]any
	switch {
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
			return metadata
		}
	case strings.HasSuffix(name, ".json"):
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return metadata
		}
	default:
		return metadata
	}

	for key, value := range parsed {
		if s, ok := scalarString(value); ok {
			metadata[key] = s
		}
	}
	return metadata
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case bool, int, int64, uint64, float64, json.Number:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}
