package skill

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionTransition compares the "version" metadata before and after a
// refresh and reports a human-readable transition ("1.2.0 → 1.3.0") when
// both values parse as semver and differ. The second return is false when
// either value is missing, unparseable, or unchanged.
func VersionTransition(oldMeta, newMeta map[string]string) (string, bool) {
	oldVersion, err := parseSemver(oldMeta["version"])
	if err != nil {
		return "", false
	}
	newVersion, err := parseSemver(newMeta["version"])
	if err != nil {
		return "", false
	}
	if oldVersion.Equal(newVersion) {
		return "", false
	}
	return oldVersion.String() + " → " + newVersion.String(), true
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
