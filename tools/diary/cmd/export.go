package cmd

import (
	"fmt"
	"os"

	"github.com/perpetuallyhorni/diary/pkg/snapshot"
	"github.com/spf13/cobra"
)

// exportCmd writes the board snapshot.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board as a snapshot.",
	Long: `Writes all posts, likes, comments and liked posts as one versioned JSON
record. Output goes to stdout unless --output is given; a file name ending
in .zst is compressed with zstd.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		output, _ := cmd.Flags().GetString("output")
		snap := diaryBoard.Snapshot()
		if output == "" || output == "-" {
			return snapshot.Write(os.Stdout, snap, false)
		}

		f, err := os.Create(output) // #nosec G304
		if err != nil {
			return fmt.Errorf("could not create %s: %w", output, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		if err := snapshot.Write(f, snap, snapshot.Compressed(output)); err != nil {
			return err
		}
		console.Success("Exported %d posts to %s.", len(snap.Posts), output)
		return nil
	},
}

// importCmd replaces the board with a snapshot.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the board with a snapshot (admin).",
	Long: `Reads a snapshot written by 'diary export' (plain or zstd-compressed JSON)
and replaces the whole board with it. Use '-' to read from stdin.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return loginFromFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		in := os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0]) // #nosec G304
			if err != nil {
				return fmt.Errorf("could not open %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}

		snap, err := snapshot.Read(in)
		if err != nil {
			return err
		}
		if err := rejected(diaryBoard.Restore(snap)); err != nil {
			return err
		}
		console.Success("Imported %d posts.", len(snap.Posts))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write the snapshot to this file instead of stdout")
	addLoginFlags(importCmd)
}
