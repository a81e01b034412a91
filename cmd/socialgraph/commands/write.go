package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/socialgraph-dev/socialgraph"
)

var (
	postContent string
	postDate    string
	postLikes   int64
	postTags    []string
)

var userCmd = &cobra.Command{
	Use:   "user <id> <name> <email> <registered-at>",
	Short: "Create or update a user (merge by email)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		u := socialgraph.User{ID: args[0], Name: args[1], Email: args[2], RegisteredAt: args[3]}
		if err := service.UpsertUser(ctx, u); err != nil {
			return err
		}
		logger.Info("user upserted", zap.String("email", u.Email))
		return nil
	},
}

var friendCmd = &cobra.Command{
	Use:   "friend <email-a> <email-b>",
	Short: "Create a symmetric friendship between two users",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := service.CreateFriendship(ctx, args[0], args[1]); err != nil {
			return err
		}
		logger.Info("friendship created", zap.String("a", args[0]), zap.String("b", args[1]))
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <follower-email> <followee-email>",
	Short: "Create a follow edge from follower to followee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := service.CreateFollow(ctx, args[0], args[1]); err != nil {
			return err
		}
		logger.Info("follow created", zap.String("follower", args[0]), zap.String("followee", args[1]))
		return nil
	},
}

var postCmd = &cobra.Command{
	Use:   "post <author-email>",
	Short: "Create a post for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		in := socialgraph.PostInput{
			Content: postContent,
			Date:    postDate,
			Likes:   postLikes,
			Tags:    postTags,
		}
		id, err := service.CreatePost(ctx, args[0], in)
		if err != nil {
			return err
		}
		fmt.Printf("created post %s\n", id)
		return nil
	},
}

func init() {
	postCmd.Flags().StringVar(&postContent, "content", "", "Post content")
	postCmd.Flags().StringVar(&postDate, "date", "", "Post date (YYYY-MM-DD)")
	postCmd.Flags().Int64Var(&postLikes, "likes", 0, "Initial like count")
	postCmd.Flags().StringSliceVar(&postTags, "tags", nil, "Tags (comma-separated)")
	_ = postCmd.MarkFlagRequired("content")
	_ = postCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(userCmd, friendCmd, followCmd, postCmd)
}
