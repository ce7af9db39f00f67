package agents

import (
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/skilldock/internal/mcpconfig"
)

// MCPSource describes one tool's MCP server configuration file.
type MCPSource struct {
	ID          string
	Label       string
	Format      string // "json" or "toml", for display
	Kind        mcpconfig.Kind
	InstallRoot string
	PrimaryPath string   // the file all writes go to
	ReadPaths   []string // older or alternate locations, probed in order on read
}

// ReadPath returns the first read path that exists, or the primary path when
// none do.
func (s *MCPSource) ReadPath() string {
	for _, path := range s.ReadPaths {
		if pathExists(path) {
			return path
		}
	}
	return s.PrimaryPath
}

// Exists reports whether any of the source's config files is present.
func (s *MCPSource) Exists() bool {
	for _, path := range s.ReadPaths {
		if pathExists(path) {
			return true
		}
	}
	return pathExists(s.PrimaryPath)
}

// MCPSources returns the MCP source table rooted at home.
func MCPSources(home string) []MCPSource {
	claudePrimary := filepath.Join(home, ".claude.json")
	claudeAlt := filepath.Join(home, ".claude", ".mcp.json")
	claudeLegacy := filepath.Join(home, ".claude", "mcp.json")
	geminiPath := filepath.Join(home, ".gemini", "settings.json")
	geminiLegacy := filepath.Join(home, ".gemini", "mcp.json")

	antigravityPrimary := filepath.Join(home, ".gemini", "antigravity", "mcp_config.json")
	antigravityLegacy := filepath.Join(home, ".antigravity", "mcp.json")
	antigravityPath := antigravityPrimary
	if !pathExists(antigravityPrimary) && pathExists(antigravityLegacy) {
		antigravityPath = antigravityLegacy
	}

	return []MCPSource{
		{
			ID:          "claude",
			Label:       "Claude Code",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".claude"),
			PrimaryPath: claudePrimary,
			ReadPaths:   []string{claudePrimary, claudeAlt, claudeLegacy},
		},
		{
			ID:          "roo",
			Label:       "Roo Code (Cline)",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".roo"),
			PrimaryPath: filepath.Join(home, ".roo", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".roo", "mcp.json")},
		},
		{
			ID:          "copilot",
			Label:       "GitHub Copilot",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".copilot"),
			PrimaryPath: filepath.Join(home, ".copilot", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".copilot", "mcp.json")},
		},
		{
			ID:          "cursor",
			Label:       "Cursor",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".cursor"),
			PrimaryPath: filepath.Join(home, ".cursor", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".cursor", "mcp.json")},
		},
		{
			ID:          "gemini",
			Label:       "Gemini CLI",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".gemini"),
			PrimaryPath: geminiPath,
			ReadPaths:   []string{geminiPath, geminiLegacy},
		},
		{
			ID:          "codex",
			Label:       "Codex",
			Format:      "toml",
			Kind:        mcpconfig.KindCodex,
			InstallRoot: filepath.Join(home, ".codex"),
			PrimaryPath: filepath.Join(home, ".codex", "config.toml"),
			ReadPaths:   []string{filepath.Join(home, ".codex", "config.toml")},
		},
		{
			ID:          "opencode",
			Label:       "OpenCode",
			Format:      "json",
			Kind:        mcpconfig.KindOpenCode,
			InstallRoot: filepath.Join(home, ".config", "opencode"),
			PrimaryPath: filepath.Join(home, ".config", "opencode", "opencode.json"),
			ReadPaths:   []string{filepath.Join(home, ".config", "opencode", "opencode.json")},
		},
		{
			ID:          "trae",
			Label:       "Trae",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".trae"),
			PrimaryPath: filepath.Join(home, ".trae", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".trae", "mcp.json")},
		},
		{
			ID:          "goose",
			Label:       "Goose",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".config", "goose"),
			PrimaryPath: filepath.Join(home, ".config", "goose", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".config", "goose", "mcp.json")},
		},
		{
			ID:          "antigravity",
			Label:       "Antigravity",
			Format:      "json",
			Kind:        mcpconfig.KindAntigravity,
			InstallRoot: filepath.Dir(antigravityPath),
			PrimaryPath: antigravityPath,
			ReadPaths:   []string{antigravityPrimary, antigravityLegacy},
		},
		{
			ID:          "kiro",
			Label:       "Kiro",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".kiro"),
			PrimaryPath: filepath.Join(home, ".kiro", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".kiro", "mcp.json")},
		},
		{
			ID:          "qoder",
			Label:       "Qoder",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".qoder"),
			PrimaryPath: filepath.Join(home, ".qoder", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".qoder", "mcp.json")},
		},
		{
			ID:          "codebuddy",
			Label:       "CodeBuddy",
			Format:      "json",
			Kind:        mcpconfig.KindClaude,
			InstallRoot: filepath.Join(home, ".codebuddy"),
			PrimaryPath: filepath.Join(home, ".codebuddy", "mcp.json"),
			ReadPaths:   []string{filepath.Join(home, ".codebuddy", "mcp.json")},
		},
	}
}

// FindMCPSource looks up an MCP source by id.
func FindMCPSource(sources []MCPSource, id string) (*MCPSource, error) {
	for i := range sources {
		if sources[i].ID == id {
			return &sources[i], nil
		}
	}
	return nil, fmt.Errorf("unknown MCP source %q", id)
}
