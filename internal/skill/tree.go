package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TreeNode is one entry in a skill's file tree listing.
type TreeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Kind     string      `json:"kind"` // "dir", "file", or "link"
	Children []*TreeNode `json:"children"`
}

// BuildTree lists the file tree rooted at path. Directories sort before
// files, names case-insensitively within each group. Symlinks are reported
// as "link" and not followed.
func BuildTree(path string) (*TreeNode, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata of %s: %w", path, err)
	}

	node := &TreeNode{
		Name:     filepath.Base(path),
		Path:     path,
		Kind:     nodeKind(info.Mode()),
		Children: []*TreeNode{},
	}
	if !info.IsDir() {
		return node, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		iDir, jDir := entries[i].IsDir(), entries[j].IsDir()
		if iDir != jDir {
			return iDir
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, entry := range entries {
		child, err := BuildTree(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func nodeKind(mode os.FileMode) string {
	switch {
	case mode.IsDir():
		return "dir"
	case mode&os.ModeSymlink != 0:
		return "link"
	default:
		return "file"
	}
}
