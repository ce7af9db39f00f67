package skill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Cool Skill!!", "my-cool-skill"},
		{"writer", "writer"},
		{"PDF Tools v2", "pdf-tools-v2"},
		{"--dashed--", "dashed"},
		{"a   b", "a-b"},
		{"émoji ✨ name", "moji-name"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify_EmptyFallsBack(t *testing.T) {
	for _, in := range []string{"", "!!!", "✨✨"} {
		got := Slugify(in)
		if !strings.HasPrefix(got, "skill-") {
			t.Errorf("Slugify(%q) = %q, want 'skill-<timestamp>' placeholder", in, got)
		}
	}
}

func TestAllocateDir(t *testing.T) {
	root := t.TempDir()

	if got := AllocateDir(root, "Writer"); got != "writer" {
		t.Errorf("AllocateDir = %q, want 'writer'", got)
	}

	// Taken names probe numeric suffixes in order.
	if err := os.Mkdir(filepath.Join(root, "writer"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := AllocateDir(root, "Writer"); got != "writer-1" {
		t.Errorf("AllocateDir = %q, want 'writer-1'", got)
	}
	if err := os.Mkdir(filepath.Join(root, "writer-1"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := AllocateDir(root, "Writer"); got != "writer-2" {
		t.Errorf("AllocateDir = %q, want 'writer-2'", got)
	}

	// A plain file blocks the name the same way a directory does.
	if err := os.WriteFile(filepath.Join(root, "notes"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if got := AllocateDir(root, "notes"); got != "notes-1" {
		t.Errorf("AllocateDir = %q, want 'notes-1'", got)
	}
}
