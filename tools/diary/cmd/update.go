package cmd

import (
	"github.com/perpetuallyhorni/diary/tools/diary/internal/update"
	"github.com/spf13/cobra"
)

// updateCmd installs the latest release.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update diary to the latest version.",
	Long: `Checks GitHub for the latest release of diary and, if it is newer,
downloads and installs it over the running binary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return update.ApplyUpdate(console, version)
	},
}
