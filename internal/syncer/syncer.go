// Package syncer copies skills and MCP server entries between two tool
// installations. The merge is add-only set difference by identifier: items
// already present in the target are skipped untouched, which makes every
// sync idempotent.
package syncer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/skilldock/internal/agents"
	"github.com/agentx-labs/skilldock/internal/fsguard"
	"github.com/agentx-labs/skilldock/internal/mcpconfig"
	"github.com/agentx-labs/skilldock/internal/skill"
)

// Result counts the outcome of one sync run.
type Result struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Skills copies every skill present in source but not in target. Target
// directories that already exist are skipped without comparing content.
func Skills(source, target *agents.SkillSource) (*Result, error) {
	if source.ID == target.ID {
		return nil, fmt.Errorf("source and target must be different")
	}
	if info, err := os.Stat(source.Root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("source skills directory missing: %s", source.Root)
	}
	if err := os.MkdirAll(target.Root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", target.Root, err)
	}

	result := &Result{}
	for _, item := range skill.Scan(source) {
		skillDir, err := fsguard.Within(source.Root, item.Path)
		if err != nil {
			return nil, err
		}

		targetDir := filepath.Join(target.Root, item.ID)
		if _, err := os.Stat(targetDir); err == nil {
			result.Skipped++
			continue
		}
		if err := fsguard.CopyDir(skillDir, targetDir); err != nil {
			return nil, err
		}
		result.Added++
	}
	return result, nil
}

// Servers copies every MCP server entry present in source but not in
// target, converting through the canonical schema between the two native
// formats. Existing entries are never overwritten.
func Servers(source, target *agents.MCPSource) (*Result, error) {
	if source.ID == target.ID {
		return nil, fmt.Errorf("source and target must be different")
	}

	sourceFormat, err := mcpconfig.ForKind(source.Kind)
	if err != nil {
		return nil, err
	}
	targetFormat, err := mcpconfig.ForKind(target.Kind)
	if err != nil {
		return nil, err
	}

	sourceServers, err := sourceFormat.ReadServers(source.ReadPath())
	if err != nil {
		return nil, err
	}
	targetServers, err := targetFormat.ReadServers(target.ReadPath())
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(targetServers))
	for _, server := range targetServers {
		existing[server.ID] = true
	}

	result := &Result{}
	toInsert := map[string]any{}
	for _, server := range sourceServers {
		if existing[server.ID] {
			result.Skipped++
			continue
		}
		toInsert[server.ID] = server.Config
		result.Added++
	}

	if len(toInsert) > 0 {
		if err := targetFormat.UpsertServers(target.PrimaryPath, toInsert); err != nil {
			return nil, err
		}
	}
	return result, nil
}
