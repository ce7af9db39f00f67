package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/agentx-labs/skilldock/internal/agents"
	"github.com/agentx-labs/skilldock/internal/mcpconfig"
	"github.com/agentx-labs/skilldock/internal/syncer"
	"github.com/spf13/cobra"
)

var (
	mcpListJSON   bool
	mcpUpsertFile string
)

func init() {
	mcpListCmd.Flags().BoolVar(&mcpListJSON, "json", false, "Output in JSON format")
	mcpUpsertCmd.Flags().StringVarP(&mcpUpsertFile, "file", "f", "", "Read the canonical JSON document from a file instead of stdin")

	mcpCmd.AddCommand(mcpListCmd)
	mcpCmd.AddCommand(mcpSyncCmd)
	mcpCmd.AddCommand(mcpUpsertCmd)
	mcpCmd.AddCommand(mcpDeleteCmd)
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP server entries across tool configs",
}

// mcpSourceListing is one tool's MCP config file and its entries, for display.
type mcpSourceListing struct {
	ID      string             `json:"id"`
	Label   string             `json:"label"`
	Path    string             `json:"path"`
	Format  string             `json:"format"`
	Exists  bool               `json:"exists"`
	Servers []mcpconfig.Server `json:"servers"`
}

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List MCP servers per installed tool",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := agents.Home()
		if err != nil {
			return err
		}

		var listings []mcpSourceListing
		for _, source := range agents.MCPSources(home) {
			if !isDir(source.InstallRoot) && !source.Exists() {
				continue
			}

			path := source.ReadPath()
			exists := fileExists(path)
			servers := []mcpconfig.Server{}
			if exists {
				format, err := mcpconfig.ForKind(source.Kind)
				if err != nil {
					return err
				}
				servers, err = format.ReadServers(path)
				if err != nil {
					return err
				}
			}

			listings = append(listings, mcpSourceListing{
				ID:      source.ID,
				Label:   source.Label,
				Path:    path,
				Format:  source.Format,
				Exists:  exists,
				Servers: servers,
			})
		}

		if mcpListJSON {
			out, err := json.MarshalIndent(listings, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling listing: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tFORMAT\tSERVER\tTARGET")
		for _, listing := range listings {
			if len(listing.Servers) == 0 {
				fmt.Fprintf(w, "%s\t%s\t-\t-\n", listing.ID, listing.Format)
				continue
			}
			for _, server := range listing.Servers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", listing.ID, listing.Format, server.ID, serverTarget(server.Config))
			}
		}
		return w.Flush()
	},
}

var mcpSyncCmd = &cobra.Command{
	Use:   "sync <source-id> <target-id>",
	Short: "Copy MCP servers missing from another tool's config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findMCPSource(args[0])
		if err != nil {
			return err
		}
		target, err := findMCPSource(args[1])
		if err != nil {
			return err
		}

		result, err := syncer.Servers(source, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Synced MCP servers: %d added, %d skipped\n", result.Added, result.Skipped)
		return nil
	},
}

var mcpUpsertCmd = &cobra.Command{
	Use:   "upsert <source-id>",
	Short: "Insert or overwrite MCP servers from a canonical JSON document",
	Long: `Read a canonical document ({"mcpServers": {"<id>": {...}}}) from stdin or
--file and write each entry into the tool's native config, converting to
its native schema. Existing entries with the same id are overwritten;
everything else in the file is preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findMCPSource(args[0])
		if err != nil {
			return err
		}

		var input []byte
		if mcpUpsertFile != "" {
			input, err = os.ReadFile(mcpUpsertFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", mcpUpsertFile, err)
			}
		} else {
			input, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
		}

		servers, err := mcpconfig.ParseCanonical(string(input))
		if err != nil {
			return err
		}
		format, err := mcpconfig.ForKind(source.Kind)
		if err != nil {
			return err
		}
		if err := format.UpsertServers(source.PrimaryPath, servers); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Upserted %d server(s) into %s\n", len(servers), source.PrimaryPath)
		return nil
	},
}

var mcpDeleteCmd = &cobra.Command{
	Use:   "delete <source-id> <server-id>",
	Short: "Delete one MCP server entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := findMCPSource(args[0])
		if err != nil {
			return err
		}
		format, err := mcpconfig.ForKind(source.Kind)
		if err != nil {
			return err
		}
		if err := format.DeleteServer(source.PrimaryPath, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s from %s\n", args[1], source.PrimaryPath)
		return nil
	},
}

func findMCPSource(id string) (*agents.MCPSource, error) {
	home, err := agents.Home()
	if err != nil {
		return nil, err
	}
	return agents.FindMCPSource(agents.MCPSources(home), id)
}

// serverTarget summarizes where an entry points: its URL, or its command line.
func serverTarget(config any) string {
	obj, ok := config.(map[string]any)
	if !ok {
		return "-"
	}
	if url, ok := obj["url"].(string); ok && url != "" {
		return url
	}
	if command, ok := obj["command"].(string); ok && command != "" {
		return command
	}
	return "-"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
