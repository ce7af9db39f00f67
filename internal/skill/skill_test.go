package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/skilldock/internal/agents"
)

func testSource(t *testing.T) *agents.SkillSource {
	t.Helper()
	root := t.TempDir()
	return &agents.SkillSource{
		ID:          "claude-user",
		Label:       "Claude Code",
		InstallRoot: filepath.Dir(root),
		Root:        root,
		CoreFiles:   []string{"SKILL.md"},
	}
}

func writeSkill(t *testing.T, root, id, content string) string {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	source := testSource(t)
	dir := writeSkill(t, source.Root, "writer", "---\nname: Writer\ndescription: Prose helper\n---\nBody.\n")

	item, err := Load(dir, filepath.Join(dir, "SKILL.md"), "SKILL.md", source)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if item.ID != "writer" {
		t.Errorf("ID = %q, want 'writer'", item.ID)
	}
	if item.Name != "Writer" {
		t.Errorf("Name = %q, want 'Writer'", item.Name)
	}
	if item.Description != "Prose helper" {
		t.Errorf("Description = %q, want 'Prose helper'", item.Description)
	}
	if item.SourceID != "claude-user" {
		t.Errorf("SourceID = %q, want 'claude-user'", item.SourceID)
	}
	if item.LastModified == 0 {
		t.Error("LastModified = 0, want core file mtime")
	}
}

func TestLoad_DefaultsFromDirAndBody(t *testing.T) {
	source := testSource(t)
	dir := writeSkill(t, source.Root, "prose-helper", "# Heading\n\nHelps with prose.\n")

	item, err := Load(dir, filepath.Join(dir, "SKILL.md"), "SKILL.md", source)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if item.Name != "prose-helper" {
		t.Errorf("Name = %q, want directory name fallback", item.Name)
	}
	if item.Description != "Helps with prose." {
		t.Errorf("Description = %q, want first body line", item.Description)
	}
}

func TestScan(t *testing.T) {
	source := testSource(t)
	writeSkill(t, source.Root, "zeta", "---\nname: zeta\n---\n")
	writeSkill(t, source.Root, "alpha", "---\nname: Alpha\n---\n")
	// A directory without a core file is skipped.
	if err := os.Mkdir(filepath.Join(source.Root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	// A loose file at the root is skipped too.
	if err := os.WriteFile(filepath.Join(source.Root, "README.md"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	skills := Scan(source)
	if len(skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(skills))
	}
	if skills[0].Name != "Alpha" || skills[1].Name != "zeta" {
		t.Errorf("order = [%s %s], want case-insensitive by name", skills[0].Name, skills[1].Name)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	source := testSource(t)
	source.Root = filepath.Join(source.Root, "absent")
	if skills := Scan(source); len(skills) != 0 {
		t.Errorf("expected no skills for missing root, got %d", len(skills))
	}
}

func TestFindCoreFile_Priority(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, name, ok := FindCoreFile(dir, []string{"manifest.json", "SKILL.md"})
	if !ok || name != "manifest.json" {
		t.Errorf("core file = %q (ok=%v), want 'manifest.json' first in candidate order", name, ok)
	}

	_, _, ok = FindCoreFile(dir, []string{"instructions.md"})
	if ok {
		t.Error("found core file, want none for non-matching candidates")
	}
}

func TestSourceURLSidecar(t *testing.T) {
	dir := t.TempDir()

	if got := ReadSourceURL(dir); got != "" {
		t.Errorf("ReadSourceURL = %q, want '' before write", got)
	}

	if err := WriteSourceURL(dir, "https://github.com/acme/skills"); err != nil {
		t.Fatalf("WriteSourceURL failed: %v", err)
	}
	if got := ReadSourceURL(dir); got != "https://github.com/acme/skills" {
		t.Errorf("ReadSourceURL = %q, want round-tripped URL", got)
	}

	// An empty URL writes nothing and leaves the sidecar alone.
	if err := WriteSourceURL(dir, "   "); err != nil {
		t.Fatalf("WriteSourceURL failed: %v", err)
	}
	if got := ReadSourceURL(dir); got != "https://github.com/acme/skills" {
		t.Errorf("ReadSourceURL = %q, want previous URL preserved", got)
	}
}
