package agents

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/skilldock/internal/mcpconfig"
)

func TestHome_PrefersEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	home, err := Home()
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if home != dir {
		t.Errorf("Home = %q, want $HOME value %q", home, dir)
	}
}

func TestSkillSources_Table(t *testing.T) {
	home := t.TempDir()
	sources := SkillSources(home)
	if len(sources) != 14 {
		t.Fatalf("expected 14 skill sources, got %d", len(sources))
	}

	claude, err := FindSkillSource(sources, "claude-user")
	if err != nil {
		t.Fatalf("FindSkillSource failed: %v", err)
	}
	if claude.Root != filepath.Join(home, ".claude", "skills") {
		t.Errorf("claude root = %q, want ~/.claude/skills", claude.Root)
	}

	// The standard source keeps skills directly under its root.
	standard, err := FindSkillSource(sources, "standard-user")
	if err != nil {
		t.Fatal(err)
	}
	if standard.Root != standard.InstallRoot {
		t.Errorf("standard root = %q, want same as install root", standard.Root)
	}

	// Core file candidates differ per tool.
	antigravity, err := FindSkillSource(sources, "antigravity-user")
	if err != nil {
		t.Fatal(err)
	}
	if len(antigravity.CoreFiles) != 2 || antigravity.CoreFiles[0] != "manifest.json" {
		t.Errorf("antigravity core files = %v, want manifest.json first", antigravity.CoreFiles)
	}

	if _, err := FindSkillSource(sources, "unknown"); err == nil {
		t.Error("expected error for unknown source id")
	}
}

func TestSkillSources_AntigravityRootFallback(t *testing.T) {
	// Fresh home: the new ~/.gemini/antigravity location wins.
	home := t.TempDir()
	source, err := FindSkillSource(SkillSources(home), "antigravity-user")
	if err != nil {
		t.Fatal(err)
	}
	if source.InstallRoot != filepath.Join(home, ".gemini", "antigravity") {
		t.Errorf("install root = %q, want new location by default", source.InstallRoot)
	}

	// Only the legacy dir exists: fall back to it.
	home = t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, ".antigravity"), 0755); err != nil {
		t.Fatal(err)
	}
	source, err = FindSkillSource(SkillSources(home), "antigravity-user")
	if err != nil {
		t.Fatal(err)
	}
	if source.InstallRoot != filepath.Join(home, ".antigravity") {
		t.Errorf("install root = %q, want legacy fallback", source.InstallRoot)
	}

	// Both exist: the new location wins again.
	if err := os.MkdirAll(filepath.Join(home, ".gemini", "antigravity"), 0755); err != nil {
		t.Fatal(err)
	}
	source, err = FindSkillSource(SkillSources(home), "antigravity-user")
	if err != nil {
		t.Fatal(err)
	}
	if source.InstallRoot != filepath.Join(home, ".gemini", "antigravity") {
		t.Errorf("install root = %q, want new location when both exist", source.InstallRoot)
	}
}

func TestMCPSources_Table(t *testing.T) {
	home := t.TempDir()
	sources := MCPSources(home)
	if len(sources) != 13 {
		t.Fatalf("expected 13 MCP sources, got %d", len(sources))
	}

	claude, err := FindMCPSource(sources, "claude")
	if err != nil {
		t.Fatal(err)
	}
	if claude.PrimaryPath != filepath.Join(home, ".claude.json") {
		t.Errorf("claude primary = %q, want ~/.claude.json", claude.PrimaryPath)
	}
	if len(claude.ReadPaths) != 3 {
		t.Errorf("claude read paths = %v, want 3 probed locations", claude.ReadPaths)
	}

	codex, err := FindMCPSource(sources, "codex")
	if err != nil {
		t.Fatal(err)
	}
	if codex.Kind != mcpconfig.KindCodex || codex.Format != "toml" {
		t.Errorf("codex kind/format = %v/%v, want codex/toml", codex.Kind, codex.Format)
	}

	opencode, err := FindMCPSource(sources, "opencode")
	if err != nil {
		t.Fatal(err)
	}
	if opencode.Kind != mcpconfig.KindOpenCode {
		t.Errorf("opencode kind = %v, want KindOpenCode", opencode.Kind)
	}

	if _, err := FindMCPSource(sources, "unknown"); err == nil {
		t.Error("expected error for unknown source id")
	}
}

func TestMCPSource_ReadPathProbing(t *testing.T) {
	home := t.TempDir()
	source, err := FindMCPSource(MCPSources(home), "claude")
	if err != nil {
		t.Fatal(err)
	}

	// Nothing exists: reads fall back to the primary path.
	if got := source.ReadPath(); got != source.PrimaryPath {
		t.Errorf("ReadPath = %q, want primary when nothing exists", got)
	}
	if source.Exists() {
		t.Error("Exists = true for fresh home")
	}

	// A legacy file makes reads go there while writes stay on primary.
	legacy := filepath.Join(home, ".claude", "mcp.json")
	if err := os.MkdirAll(filepath.Dir(legacy), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(legacy, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := source.ReadPath(); got != legacy {
		t.Errorf("ReadPath = %q, want legacy path %q", got, legacy)
	}
	if !source.Exists() {
		t.Error("Exists = false with legacy file present")
	}

	// The primary file outranks the legacy one.
	if err := os.WriteFile(source.PrimaryPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := source.ReadPath(); got != source.PrimaryPath {
		t.Errorf("ReadPath = %q, want primary once it exists", got)
	}
}

func TestMCPSources_AntigravityLegacyPath(t *testing.T) {
	home := t.TempDir()
	legacy := filepath.Join(home, ".antigravity", "mcp.json")
	if err := os.MkdirAll(filepath.Dir(legacy), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(legacy, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	source, err := FindMCPSource(MCPSources(home), "antigravity")
	if err != nil {
		t.Fatal(err)
	}
	if source.PrimaryPath != legacy {
		t.Errorf("primary = %q, want legacy file adopted when it alone exists", source.PrimaryPath)
	}
}
