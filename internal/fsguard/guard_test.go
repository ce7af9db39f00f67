package fsguard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWithin_Inside(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "skill")
	if err := os.Mkdir(child, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Within(root, child)
	if err != nil {
		t.Fatalf("Within failed: %v", err)
	}
	if filepath.Base(got) != "skill" {
		t.Errorf("canonical path = %q, want basename 'skill'", got)
	}

	// The root itself is inside the root.
	if _, err := Within(root, root); err != nil {
		t.Errorf("Within(root, root) failed: %v", err)
	}
}

func TestWithin_DotDotEscape(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	outside := filepath.Join(base, "outside")
	for _, dir := range []string{root, outside} {
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	_, err := Within(root, filepath.Join(root, "..", "outside"))
	if !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("err = %v, want ErrOutsideRoot", err)
	}
}

func TestWithin_SymlinkEscape(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	outside := filepath.Join(base, "outside")
	for _, dir := range []string{root, outside} {
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	link := filepath.Join(root, "sneaky")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := Within(root, link)
	if !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("err = %v, want ErrOutsideRoot for symlink pointing outside", err)
	}
}

func TestWithin_SiblingPrefix(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	sibling := filepath.Join(base, "root-data")
	for _, dir := range []string{root, sibling} {
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	// "root-data" shares a string prefix with "root" but is not inside it.
	_, err := Within(root, sibling)
	if !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("err = %v, want ErrOutsideRoot for sibling with shared prefix", err)
	}
}

func TestWithin_MissingTarget(t *testing.T) {
	root := t.TempDir()
	if _, err := Within(root, filepath.Join(root, "absent")); err == nil {
		t.Error("expected error for nonexistent target")
	}
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "scripts"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "SKILL.md"), []byte("# Skill\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "scripts", "run.sh"), []byte("echo hi\n"), 0755); err != nil {
		t.Fatal(err)
	}
	// Best effort; CopyDir must skip the link when it exists.
	_ = os.Symlink(filepath.Join(src, "SKILL.md"), filepath.Join(src, "alias"))

	dst := filepath.Join(t.TempDir(), "copy")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "SKILL.md"))
	if err != nil {
		t.Fatalf("reading copied file: %v", err)
	}
	if string(data) != "# Skill\n" {
		t.Errorf("copied content = %q, want '# Skill\\n'", string(data))
	}

	info, err := os.Stat(filepath.Join(dst, "scripts", "run.sh"))
	if err != nil {
		t.Fatalf("nested copy missing: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755 preserved", info.Mode().Perm())
	}

	if _, err := os.Lstat(filepath.Join(dst, "alias")); err == nil {
		t.Error("symlink was copied, want skipped")
	}
}
