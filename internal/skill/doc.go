// Package skill discovers, installs, and maintains skill bundles under each
// tool's skills directory. A skill is a directory whose core file (SKILL.md
// or a tool-specific equivalent) carries display metadata; supporting files
// ride along unchanged. Installation resolves a user-supplied URL through
// the github package, allocates a collision-free directory slug, and records
// the originating URL in a .skill-source.json sidecar so the bundle can be
// refreshed later.
package skill
