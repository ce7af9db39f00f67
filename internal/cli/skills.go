package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/agentx-labs/skilldock/internal/agents"
	"github.com/agentx-labs/skilldock/internal/config"
	"github.com/agentx-labs/skilldock/internal/github"
	"github.com/agentx-labs/skilldock/internal/skill"
	"github.com/agentx-labs/skilldock/internal/syncer"
	"github.com/spf13/cobra"
)

var (
	skillsListJSON    bool
	skillInstallToken string
)

func init() {
	skillsListCmd.Flags().BoolVar(&skillsListJSON, "json", false, "Output in JSON format")
	skillsInstallCmd.Flags().StringVar(&skillInstallToken, "token", "", "GitHub token for this call only")

	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsInstallCmd)
	skillsCmd.AddCommand(skillsRefreshCmd)
	skillsCmd.AddCommand(skillsDeleteCmd)
	skillsCmd.AddCommand(skillsSyncCmd)
	skillsCmd.AddCommand(skillsTreeCmd)
	rootCmd.AddCommand(skillsCmd)
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage skills across tool installations",
}

// skillSourceListing is one tool installation and its skills, for display.
type skillSourceListing struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Root   string       `json:"root"`
	Exists bool         `json:"exists"`
	Skills []skill.Item `json:"skills"`
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills per installed tool",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := installedSkillSources()
		if err != nil {
			return err
		}

		var listings []skillSourceListing
		for i := range sources {
			source := &sources[i]
			exists := isDir(source.Root)
			items := []skill.Item{}
			if exists {
				items = skill.Scan(source)
			}
			listings = append(listings, skillSourceListing{
				ID:     source.ID,
				Label:  source.Label,
				Root:   source.Root,
				Exists: exists,
				Skills: items,
			})
		}

		if skillsListJSON {
			out, err := json.MarshalIndent(listings, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling listing: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tSKILL\tNAME\tDESCRIPTION")
		for _, listing := range listings {
			if len(listing.Skills) == 0 {
				fmt.Fprintf(w, "%s\t-\t-\t-\n", listing.ID)
				continue
			}
			for _, item := range listing.Skills {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", listing.ID, item.ID, item.Name, truncate(item.Description, 60))
			}
		}
		return w.Flush()
	},
}

var skillsInstallCmd = &cobra.Command{
	Use:   "install <source-id> <url>",
	Short: "Install a skill from a URL",
	Long: `Download a skill into a tool's skills directory. GitHub repository and
raw URLs pull the whole directory tree; any other URL fetches the core
file alone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findSkillSource(args[0])
		if err != nil {
			return err
		}

		manager := skill.NewManager(newGitHubClient(skillInstallToken))
		item, err := manager.Install(source, args[1])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Installed %s (%s) to %s\n", item.Name, item.ID, item.Path)
		return nil
	},
}

var skillsRefreshCmd = &cobra.Command{
	Use:   "refresh <source-id> <skill-id> <url>",
	Short: "Re-download an installed skill from a URL",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findSkillSource(args[0])
		if err != nil {
			return err
		}

		var oldMeta map[string]string
		if path, name, ok := skill.FindCoreFile(sourceSkillDir(source, args[1]), source.CoreFiles); ok {
			if old, err := skill.Load(sourceSkillDir(source, args[1]), path, name, source); err == nil {
				oldMeta = old.Metadata
			}
		}

		manager := skill.NewManager(newGitHubClient(""))
		item, err := manager.Refresh(source, args[1], args[2])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Refreshed %s (%s)\n", item.Name, item.ID)
		if transition, ok := skill.VersionTransition(oldMeta, item.Metadata); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  version %s\n", transition)
		}
		return nil
	},
}

var skillsDeleteCmd = &cobra.Command{
	Use:   "delete <source-id> <skill-id>",
	Short: "Delete an installed skill",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findSkillSource(args[0])
		if err != nil {
			return err
		}
		if err := skill.Delete(source, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[1])
		return nil
	},
}

var skillsSyncCmd = &cobra.Command{
	Use:   "sync <source-id> <target-id>",
	Short: "Copy skills missing from another installation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findSkillSource(args[0])
		if err != nil {
			return err
		}
		target, err := findSkillSource(args[1])
		if err != nil {
			return err
		}

		result, err := syncer.Skills(source, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Synced skills: %d added, %d skipped\n", result.Added, result.Skipped)
		return nil
	},
}

var skillsTreeCmd = &cobra.Command{
	Use:   "tree <source-id> <skill-id>",
	Short: "Show the file tree of an installed skill",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findSkillSource(args[0])
		if err != nil {
			return err
		}
		node, err := skill.Tree(source, args[1])
		if err != nil {
			return err
		}
		printTree(cmd, node, 0)
		return nil
	},
}

func printTree(cmd *cobra.Command, node *skill.TreeNode, depth int) {
	marker := ""
	switch node.Kind {
	case "dir":
		marker = "/"
	case "link":
		marker = "@"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s\n", strings.Repeat("  ", depth), node.Name, marker)
	for _, child := range node.Children {
		printTree(cmd, child, depth+1)
	}
}

// installedSkillSources returns the skill sources whose tool is present on
// this machine.
func installedSkillSources() ([]agents.SkillSource, error) {
	home, err := agents.Home()
	if err != nil {
		return nil, err
	}
	var installed []agents.SkillSource
	for _, source := range agents.SkillSources(home) {
		if isDir(source.InstallRoot) {
			installed = append(installed, source)
		}
	}
	return installed, nil
}

func findSkillSource(id string) (*agents.SkillSource, error) {
	home, err := agents.Home()
	if err != nil {
		return nil, err
	}
	return agents.FindSkillSource(agents.SkillSources(home), id)
}

// newGitHubClient builds a client for one invocation, resolving the token
// from the flag, the config file, and the environment in that order.
func newGitHubClient(flagToken string) *github.Client {
	override := flagToken
	if override == "" {
		override = config.Get(config.GitHubTokenKey)
	}
	return github.NewClient(github.WithToken(github.ResolveToken(override)))
}

func sourceSkillDir(source *agents.SkillSource, skillID string) string {
	return filepath.Join(source.Root, skillID)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
