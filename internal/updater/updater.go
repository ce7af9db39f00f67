package updater

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/skilldock/internal/branding"
	"github.com/agentx-labs/skilldock/internal/github"
)

// Updater checks for and applies new releases of the CLI binary.
type Updater struct {
	client         *github.Client
	currentVersion string
}

// New creates an Updater for the running binary's version.
func New(currentVersion string, client *github.Client) *Updater {
	return &Updater{client: client, currentVersion: currentVersion}
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// LatestRelease fetches the newest published release of this project.
func (u *Updater) LatestRelease() (*github.Release, error) {
	return u.client.LatestRelease(branding.GitHubRepo())
}

// ReleaseByTag fetches a specific release of this project by version tag.
func (u *Updater) ReleaseByTag(tag string) (*github.Release, error) {
	return u.client.ReleaseByTag(branding.GitHubRepo(), tag)
}

// IsUpdateAvailable reports whether latest is newer than current.
func IsUpdateAvailable(current, latest string) (bool, error) {
	cv, err := parseVersion(current)
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseVersion(latest)
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.LessThan(lv), nil
}

// ArchiveName returns the release archive filename for the current platform,
// following the GoReleaser template {name}_{os}_{arch}.tar.gz (.zip on
// Windows).
func ArchiveName() string {
	ext := ".tar.gz"
	if runtime.GOOS == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s%s", branding.CLIName(), runtime.GOOS, runtime.GOARCH, ext)
}

// SelectAsset finds the release asset for the current OS and architecture.
func SelectAsset(assets []github.Asset) (*github.Asset, error) {
	expected := ArchiveName()
	for i := range assets {
		if assets[i].Name == expected {
			return &assets[i], nil
		}
	}

	// Fall back to any archive carrying the os_arch pair in its name.
	pattern := fmt.Sprintf("%s_%s", runtime.GOOS, runtime.GOARCH)
	for i := range assets {
		if strings.Contains(assets[i].Name, pattern) && isArchive(assets[i].Name) {
			return &assets[i], nil
		}
	}

	return nil, fmt.Errorf("no asset found for %s/%s (expected %s)", runtime.GOOS, runtime.GOARCH, expected)
}

func isArchive(name string) bool {
	return strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".zip")
}

func parseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}
