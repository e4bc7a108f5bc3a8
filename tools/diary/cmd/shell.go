package cmd

import (
	"os"

	"github.com/perpetuallyhorni/diary/tools/diary/internal/shell"
	"github.com/spf13/cobra"
)

// shellCmd starts an interactive session on the board.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session.",
	Long: `Starts an interactive session. The login state and the draft post last
until you leave the shell. Type 'help' for the available commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.New(diaryBoard, console, os.Stdin, os.Stdout).Run()
	},
}
