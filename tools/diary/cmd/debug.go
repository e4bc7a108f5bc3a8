package cmd

import (
	"fmt"

	diary "github.com/perpetuallyhorni/diary/internal"
	"github.com/perpetuallyhorni/diary/pkg/storage"
	"github.com/spf13/cobra"
)

// debugCmd is the parent command for debugging tools.
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debugging tools for diary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var debugSlotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Dump the raw slot documents from the store.",
	Long: `Prints each stored slot exactly as it is saved, without validation.
Useful to see why a slot was discarded on load.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if l, ok := store.(storage.Locator); ok {
			console.Info("Store: %s", l.Location())
		}
		for _, slot := range diary.Slots {
			raw, ok, err := store.Get(slot)
			if err != nil {
				return fmt.Errorf("failed to read slot %s: %w", slot, err)
			}
			if !ok {
				fmt.Printf("%s: <absent>\n", slot)
				continue
			}
			fmt.Printf("%s: %s\n", slot, raw)
		}
		return nil
	},
}

func init() {
	debugCmd.AddCommand(debugSlotsCmd)
}
