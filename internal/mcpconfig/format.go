package mcpconfig

import (
	"errors"
	"fmt"
	"sort"
)

// Kind tags one native on-disk schema for MCP server entries.
type Kind string

const (
	// KindClaude is the plain object-of-objects JSON shape under "mcpServers".
	KindClaude Kind = "claude"
	// KindAntigravity is JSON under "mcpServers" with "serverUrl" instead of "url".
	KindAntigravity Kind = "antigravity"
	// KindOpenCode is JSON under "mcp" with an array-of-strings command.
	KindOpenCode Kind = "opencode"
	// KindCodex is a TOML document with an "mcp_servers" table.
	KindCodex Kind = "codex"
)

// Server is one MCP server entry in canonical form. Config is normally an
// object; a malformed document can carry any JSON value there, and such
// values pass through conversions unchanged.
type Server struct {
	ID     string `json:"id"`
	Config any    `json:"config"`
}

var (
	// ErrServerNotFound reports a delete of an entry id absent from the document.
	ErrServerNotFound = errors.New("MCP server not found")
	// ErrNoServers reports a delete against a document with no server container.
	ErrNoServers = errors.New("no MCP servers configured")
)

// Format converts between one native document shape and canonical servers.
// Implementations are pure over the document structure; all I/O goes through
// the shared load/save helpers so absent files read as empty documents.
type Format interface {
	// ReadServers lists the entries in the document at path in canonical
	// form, sorted by id. A missing file yields an empty list.
	ReadServers(path string) ([]Server, error)
	// UpsertServers inserts or overwrites the given canonical entries,
	// preserving all other document content. Object entries are converted to
	// the native shape; anything else is written through verbatim.
	UpsertServers(path string, servers map[string]any) error
	// DeleteServer removes one entry by id. The file is left untouched when
	// the id or the server container is absent.
	DeleteServer(path string, id string) error
}

// ForKind returns the Format implementation for a native schema tag.
func ForKind(kind Kind) (Format, error) {
	switch kind {
	case KindClaude:
		return &jsonFormat{container: "mcpServers", toStandard: identityConfig, toNative: identityConfigErr}, nil
	case KindAntigravity:
		return &jsonFormat{container: "mcpServers", toStandard: antigravityToStandard, toNative: standardToAntigravity}, nil
	case KindOpenCode:
		return &jsonFormat{container: "mcp", toStandard: opencodeToStandard, toNative: standardToOpencode}, nil
	case KindCodex:
		return &codexFormat{container: "mcp_servers"}, nil
	default:
		return nil, fmt.Errorf("unknown MCP config format %q", kind)
	}
}

func sortServers(servers []Server) {
	sort.Slice(servers, func(i, j int) bool { return servers[i].ID < servers[j].ID })
}
