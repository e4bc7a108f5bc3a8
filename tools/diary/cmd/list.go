package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagFormat string

// listCmd renders the board.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the board.",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

// runList prints the board in the selected format.
func runList(cmd *cobra.Command, args []string) error {
	view := diaryBoard.View()
	switch flagFormat {
	case "", "text":
		console.RenderBoard(os.Stdout, view)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q, expected text, json or yaml", flagFormat)
	}
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, listCmd} {
		c.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text, json or yaml")
	}
}
