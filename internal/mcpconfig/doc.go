// Package mcpconfig reads and writes MCP server entries across the native
// config formats used by AI coding tools. Every format converts to and from
// one canonical server shape (command/args/url/env/type/enabled plus
// passthrough of unrecognized fields), so entries can be edited and copied
// between tools without knowing each tool's schema. Writes are
// read-modify-write: sibling entries and unrelated top-level keys in the
// native document are always preserved.
package mcpconfig
