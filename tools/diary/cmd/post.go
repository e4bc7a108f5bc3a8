package cmd

import (
	"strings"

	"github.com/perpetuallyhorni/diary/pkg/board"
	"github.com/spf13/cobra"
)

// postCmd groups the admin post operations.
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Add, edit or delete posts (admin).",
	Long: `Admin post operations. Every subcommand logs in first with the
--username and --password flags; the username defaults to the configured admin.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return loginFromFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var postAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a post.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := diaryBoard.AddPost(joinArgs(args))
		if err := rejected(err); err != nil {
			return err
		}
		if post == nil {
			console.Warn("Nothing to post.")
			return nil
		}
		console.Success("Added post #%d.", post.ID)
		return nil
	},
}

var postEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a post.",
	Long: `Replaces the content of a post. Without --content the current text is
opened in your editor; saving an empty file cancels the edit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}

		var prompt board.Prompter
		if cmd.Flags().Changed("content") {
			content, _ := cmd.Flags().GetString("content")
			prompt = func(string) (string, error) { return content, nil }
		} else {
			prompt = editorPrompter(cmd)
		}

		changed, err := diaryBoard.EditPost(id, prompt)
		if err := rejected(err); err != nil {
			return err
		}
		if changed {
			console.Success("Edited post #%d.", id)
		} else {
			console.Info("Post #%d unchanged.", id)
		}
		return nil
	},
}

var postDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a post.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		if err := rejected(diaryBoard.DeletePost(id)); err != nil {
			return err
		}
		console.Success("Deleted post #%d.", id)
		return nil
	},
}

// addLoginFlags registers the admin credential flags on c.
func addLoginFlags(c *cobra.Command) {
	c.PersistentFlags().StringP("username", "u", "", "Admin username (defaults to the configured admin)")
	c.PersistentFlags().StringP("password", "p", "", "Admin password")
}

// joinArgs joins positional arguments back into one text.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

func init() {
	addLoginFlags(postCmd)
	postEditCmd.Flags().String("content", "", "New content; skips the editor")
	postEditCmd.Flags().String("editor", "", "Editor to use when --content is not given")
	postCmd.AddCommand(postAddCmd, postEditCmd, postDeleteCmd)
}
