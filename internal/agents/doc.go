// Package agents declares the known AI tool installations on the local
// machine: where each tool keeps its skills and which file, in which native
// format, holds its MCP server entries. The table is static by design; a
// tool only shows up in listings when its install root or config file
// actually exists.
package agents
