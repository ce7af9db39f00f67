// Package fsguard keeps filesystem operations inside a declared root. Every
// write, move, or delete whose target path is derived from user input must
// pass Within first; symlinks and ".." segments are resolved before the
// containment check, so a link pointing outside the root is rejected the
// same way a literal escape is.
package fsguard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot reports a target path that resolves outside its root.
var ErrOutsideRoot = errors.New("path resolves outside the allowed root")

// Within canonicalizes root and target and verifies that target stays under
// root. Both paths must exist. It returns the canonical target path.
func Within(root, target string) (string, error) {
	rootCanon, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	targetCanon, err := filepath.EvalSymlinks(target)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", target, err)
	}

	if targetCanon != rootCanon && !strings.HasPrefix(targetCanon, rootCanon+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", target, ErrOutsideRoot)
	}
	return targetCanon, nil
}
