package cli

import (
	"fmt"
	"os"

	"github.com/agentx-labs/skilldock/internal/branding"
	"github.com/agentx-labs/skilldock/internal/github"
	"github.com/agentx-labs/skilldock/internal/updater"
	"github.com/spf13/cobra"
)

var updateCheckOnly bool

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Check for a newer version without installing it")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [version]",
	Short: "Update " + branding.CLIName() + " to the latest release",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := updater.New(buildVersion, github.NewClient(
			github.WithToken(github.ResolveToken("")),
		))

		var release *github.Release
		var err error
		if len(args) == 1 {
			release, err = u.ReleaseByTag(args[0])
		} else {
			release, err = u.LatestRelease()
		}
		if err != nil {
			return err
		}

		available, err := updater.IsUpdateAvailable(buildVersion, release.TagName)
		if err != nil {
			// Dev builds have no comparable version; install what was asked for.
			available = true
		}

		if updateCheckOnly {
			if available {
				fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s -> %s\n", buildVersion, release.TagName)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is up to date\n", branding.CLIName(), buildVersion)
			}
			return nil
		}
		if !available && len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already the latest version\n", branding.CLIName(), buildVersion)
			return nil
		}

		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating current binary: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updating to %s...\n", release.TagName)
		if err := u.Apply(release, execPath, cmd.ErrOrStderr()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated to %s\n", release.TagName)
		return nil
	},
}
