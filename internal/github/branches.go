package github

import (
	"encoding/json"
	"fmt"
)

// DefaultBranch queries the repository's configured default branch.
func (c *Client) DefaultBranch(owner, repo string) (string, error) {
	body, err := c.getAPI(fmt.Sprintf("%s/repos/%s/%s", c.apiBase, owner, repo))
	if err != nil {
		return "", fmt.Errorf("reading repository info: %w", err)
	}

	var info struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("parsing repository info: %w", err)
	}
	if info.DefaultBranch == "" {
		return "", fmt.Errorf("missing default_branch in repository info")
	}
	return info.DefaultBranch, nil
}

// BranchCandidates returns the branch names to try, in priority order. An
// explicit branch on the location is the only candidate. Otherwise the
// queried default branch comes first, followed by "main" and "master"
// deduplicated; the list is never empty even when the query fails, because
// default-branch naming is inconsistent and the query itself may be rate
// limited without that being fatal.
func (c *Client) BranchCandidates(loc *Location) []string {
	if loc.Branch != "" {
		return []string{loc.Branch}
	}

	var branches []string
	if defaultBranch, err := c.DefaultBranch(loc.Owner, loc.Repo); err == nil {
		branches = append(branches, defaultBranch)
	}
	for _, candidate := range []string{"main", "master"} {
		if !contains(branches, candidate) {
			branches = append(branches, candidate)
		}
	}
	return branches
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
