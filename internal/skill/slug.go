package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Slugify converts a display name into a filesystem-safe identifier: ASCII
// alphanumerics lower-cased, every other run of characters collapsed to a
// single dash, leading and trailing dashes trimmed. An empty result falls
// back to a time-based placeholder so a slug is never empty.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := false

	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9':
			b.WriteRune(ch)
			lastDash = false
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune(ch + ('a' - 'A'))
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	trimmed := strings.Trim(b.String(), "-")
	if trimmed == "" {
		return fmt.Sprintf("skill-%d", time.Now().Unix())
	}
	return trimmed
}

// AllocateDir returns a directory name under root derived from name that
// does not collide with an existing entry, probing "-1", "-2", … linearly.
// The directory is not created.
func AllocateDir(root, name string) string {
	base := Slugify(name)
	if !dirTaken(root, base) {
		return base
	}
	for suffix := 1; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		if !dirTaken(root, candidate) {
			return candidate
		}
	}
}

func dirTaken(root, name string) bool {
	_, err := os.Lstat(filepath.Join(root, name))
	return err == nil
}
