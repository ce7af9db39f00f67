package cli

import (
	"fmt"
	"os"

	"github.com/agentx-labs/skilldock/internal/branding"
	"github.com/agentx-labs/skilldock/internal/config"
	"github.com/agentx-labs/skilldock/internal/github"
	"github.com/agentx-labs/skilldock/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs skills from URLs, copies skills and MCP servers between
AI tool installations, and edits MCP server entries through one canonical
schema regardless of which tool's native file stores them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		maybePrintUpdateBanner(cmd)
	},
}

// maybePrintUpdateBanner shows the cached update notice, except on the
// commands that already deal with versions and on dev builds.
func maybePrintUpdateBanner(cmd *cobra.Command) {
	switch cmd.Name() {
	case "update", "version":
		return
	}
	if buildVersion == "" || buildVersion == "dev" {
		return
	}
	u := updater.New(buildVersion, github.NewClient(github.WithToken(github.ResolveToken(""))))
	u.CheckAndPrintBanner(cmd.ErrOrStderr(), config.Dir())
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
