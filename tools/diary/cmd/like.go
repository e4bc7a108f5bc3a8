package cmd

import (
	"github.com/spf13/cobra"
)

// likeCmd likes a post once per store.
var likeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a post.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		if err := rejected(diaryBoard.Like(id)); err != nil {
			return err
		}
		console.Success("Liked post #%d (%d likes).", id, diaryBoard.Likes(id))
		return nil
	},
}

// commentCmd appends a comment to a post.
var commentCmd = &cobra.Command{
	Use:   "comment <id> <text...>",
	Short: "Comment on a post.",
	Long: `Appends a comment to a post. All arguments after the id are joined with
single spaces. Blank comments are ignored.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		before := len(diaryBoard.Comments(id))
		if err := diaryBoard.Comment(id, joinArgs(args[1:])); err != nil {
			return err
		}
		if len(diaryBoard.Comments(id)) > before {
			console.Success("Commented on post #%d.", id)
		}
		return nil
	},
}
