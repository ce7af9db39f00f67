package agents

import (
	"fmt"
	"os"
	"path/filepath"
)

// SkillSource describes one tool installation that stores skill bundles.
type SkillSource struct {
	ID          string
	Label       string
	InstallRoot string   // the tool's dot-directory; presence marks the tool installed
	Root        string   // skills directory under InstallRoot
	CoreFiles   []string // candidate core file names, tried in order
}

// Home resolves the user's home directory, preferring $HOME so tests and
// sandboxed environments can redirect it.
func Home() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// SkillSources returns the skill source table rooted at home.
func SkillSources(home string) []SkillSource {
	skillMD := []string{"SKILL.md"}
	antigravityFiles := []string{"manifest.json", "SKILL.md"}
	codebuddyFiles := []string{".cb-rules", "SKILL.md"}
	kiroFiles := []string{"instructions.md"}
	qoderFiles := []string{"config.yaml"}
	antigravityRoot := antigravityInstallRoot(home)

	return []SkillSource{
		{
			ID:          "claude-user",
			Label:       "Claude Code",
			InstallRoot: filepath.Join(home, ".claude"),
			Root:        filepath.Join(home, ".claude", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "roo-user",
			Label:       "Roo Code (Cline)",
			InstallRoot: filepath.Join(home, ".roo"),
			Root:        filepath.Join(home, ".roo", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "copilot-user",
			Label:       "GitHub Copilot",
			InstallRoot: filepath.Join(home, ".copilot"),
			Root:        filepath.Join(home, ".copilot", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "cursor-user",
			Label:       "Cursor",
			InstallRoot: filepath.Join(home, ".cursor"),
			Root:        filepath.Join(home, ".cursor", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "opencode-user",
			Label:       "OpenCode",
			InstallRoot: filepath.Join(home, ".config", "opencode"),
			Root:        filepath.Join(home, ".config", "opencode", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "gemini-user",
			Label:       "Gemini CLI",
			InstallRoot: filepath.Join(home, ".gemini"),
			Root:        filepath.Join(home, ".gemini", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "codex-user",
			Label:       "Codex",
			InstallRoot: filepath.Join(home, ".codex"),
			Root:        filepath.Join(home, ".codex", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "trae-user",
			Label:       "Trae",
			InstallRoot: filepath.Join(home, ".trae"),
			Root:        filepath.Join(home, ".trae", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "goose-user",
			Label:       "Goose",
			InstallRoot: filepath.Join(home, ".config", "goose"),
			Root:        filepath.Join(home, ".config", "goose", "skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "standard-user",
			Label:       "Common Standard",
			InstallRoot: filepath.Join(home, ".skills"),
			Root:        filepath.Join(home, ".skills"),
			CoreFiles:   skillMD,
		},
		{
			ID:          "antigravity-user",
			Label:       "Antigravity",
			InstallRoot: antigravityRoot,
			Root:        filepath.Join(antigravityRoot, "skills"),
			CoreFiles:   antigravityFiles,
		},
		{
			ID:          "kiro-user",
			Label:       "Kiro",
			InstallRoot: filepath.Join(home, ".kiro"),
			Root:        filepath.Join(home, ".kiro", "skills"),
			CoreFiles:   kiroFiles,
		},
		{
			ID:          "qoder-user",
			Label:       "Qoder",
			InstallRoot: filepath.Join(home, ".qoder"),
			Root:        filepath.Join(home, ".qoder", "skills"),
			CoreFiles:   qoderFiles,
		},
		{
			ID:          "codebuddy-user",
			Label:       "CodeBuddy",
			InstallRoot: filepath.Join(home, ".codebuddy"),
			Root:        filepath.Join(home, ".codebuddy", "skills"),
			CoreFiles:   codebuddyFiles,
		},
	}
}

// FindSkillSource looks up a skill source by id.
func FindSkillSource(sources []SkillSource, id string) (*SkillSource, error) {
	for i := range sources {
		if sources[i].ID == id {
			return &sources[i], nil
		}
	}
	return nil, fmt.Errorf("unknown skill source %q", id)
}

// antigravityInstallRoot prefers the new ~/.gemini/antigravity location and
// falls back to the legacy ~/.antigravity only when it alone exists.
func antigravityInstallRoot(home string) string {
	geminiRoot := filepath.Join(home, ".gemini", "antigravity")
	legacyRoot := filepath.Join(home, ".antigravity")
	if pathExists(geminiRoot) || !pathExists(legacyRoot) {
		return geminiRoot
	}
	return legacyRoot
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
