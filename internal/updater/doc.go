// Package updater implements self-update from GitHub releases: version
// check with a daily on-disk cache, platform asset selection, checksum
// verification, and an atomic binary swap with rollback.
package updater
