// Package cli wires the cobra command tree: skills
// (list/install/refresh/delete/sync/tree), mcp (list/upsert/delete/sync),
// config, and version. Commands resolve the agent tables, construct a
// GitHub client scoped to the invocation, and delegate to the skill,
// mcpconfig, and syncer packages.
package cli
