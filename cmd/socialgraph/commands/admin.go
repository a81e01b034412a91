package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/socialgraph-dev/socialgraph"
	"github.com/socialgraph-dev/socialgraph/seed"
)

var (
	seedValue int64
	wipeFirst bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Reset the database, install constraints, and load demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		logger.Info("resetting database")
		if err := service.Reset(ctx); err != nil {
			return err
		}

		logger.Info("installing constraints")
		if err := service.InitSchema(ctx); err != nil {
			return err
		}

		logger.Info("seeding demo data", zap.Int64("seed", seedValue))
		if err := seed.New(service, seedValue).Run(ctx); err != nil {
			return err
		}

		return printStats(ctx, service)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if wipeFirst {
			if err := service.Reset(ctx); err != nil {
				return err
			}
		}

		logger.Info("seeding demo data", zap.Int64("seed", seedValue))
		return seed.New(service, seedValue).Run(ctx)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database contents summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		return printStats(ctx, service)
	},
}

func printStats(ctx context.Context, service *socialgraph.Service) error {
	stats, err := service.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Users: %d\n", stats.Users)
	fmt.Printf("Posts: %d\n", stats.Posts)
	fmt.Printf("Tags:  %d (%v)\n", stats.Tags, stats.TagNames)
	fmt.Println("Most friended:")
	for _, d := range stats.MostFriended {
		fmt.Printf("  %s: %d friends\n", d.Name, d.Friends)
	}
	return nil
}

func init() {
	initCmd.Flags().Int64Var(&seedValue, "seed", 1, "Random seed for demo data")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 1, "Random seed for demo data")
	seedCmd.Flags().BoolVar(&wipeFirst, "wipe", false, "Delete all existing data first")

	rootCmd.AddCommand(initCmd, seedCmd, infoCmd)
}
