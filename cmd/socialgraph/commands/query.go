package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var topLimit int

var postsCmd = &cobra.Command{
	Use:   "posts <email>",
	Short: "List a user's posts, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		posts, err := service.PostsByUser(ctx, args[0])
		if err != nil {
			return err
		}
		for _, p := range posts {
			printPost(p.ID, p.Content, p.Date, p.Likes, p.Tags)
		}
		return nil
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most-liked posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		ranked, err := service.TopPosts(ctx, topLimit)
		if err != nil {
			return err
		}
		for _, p := range ranked {
			fmt.Printf("Author: %s\n", p.Author)
			printPost(p.ID, p.Content, p.Date, p.Likes, p.Tags)
		}
		return nil
	},
}

var mutualCmd = &cobra.Command{
	Use:   "mutual <email-a> <email-b>",
	Short: "List the common friends of two users",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		names, err := service.MutualFriends(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <email>",
	Short: "Suggest friends of friends for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		names, err := service.FriendSuggestions(ctx, args[0])
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	topCmd.Flags().IntVar(&topLimit, "limit", 0, "Number of posts to show (default 5)")

	rootCmd.AddCommand(postsCmd, topCmd, mutualCmd, suggestCmd)
}
