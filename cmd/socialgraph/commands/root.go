// Package commands implements the socialgraph demo CLI. It is a thin caller
// of the library core: connection settings come from flags and NEO4J_*
// environment variables, and every subcommand maps onto one core operation.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/socialgraph-dev/socialgraph"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "socialgraph",
	Short: "Social graph demo over Neo4j",
	Long: `socialgraph - a small social network on a graph database

Users, posts, tags, friendships and follows, with mutual-friend,
friend-suggestion and trending-post queries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("could not build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("uri", "", "Neo4j connection URI (env NEO4J_URI)")
	rootCmd.PersistentFlags().String("username", "", "Neo4j username (env NEO4J_USERNAME)")
	rootCmd.PersistentFlags().String("password", "", "Neo4j password (env NEO4J_PASSWORD)")
	rootCmd.PersistentFlags().String("database", "", "Neo4j database name (env NEO4J_DATABASE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	for _, name := range []string{"uri", "username", "password", "database"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix("neo4j")
	viper.AutomaticEnv()

	viper.SetDefault("uri", "neo4j://localhost:7687")
	viper.SetDefault("username", "neo4j")
	viper.SetDefault("database", "neo4j")
}

// connect builds the executor from the resolved configuration, verifies
// connectivity, and returns the service with a cleanup function.
func connect(ctx context.Context) (*socialgraph.Service, func(), error) {
	cfg := socialgraph.DefaultConfig()
	cfg.URI = viper.GetString("uri")
	cfg.Username = viper.GetString("username")
	cfg.Password = viper.GetString("password")
	cfg.Database = viper.GetString("database")

	executor, err := socialgraph.NewNeo4jExecutor(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() { _ = executor.Close(ctx) }

	if err := executor.Verify(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Debug("connected to Neo4j", zap.String("uri", cfg.URI), zap.String("database", cfg.Database))

	service, err := socialgraph.NewService(executor)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return service, cleanup, nil
}

// printPost renders a post summary for terminal output.
func printPost(id, content, date string, likes int64, tags []string) {
	fmt.Printf("ID: %s\nContent: %s\nDate: %s, Likes: %d, Tags: %v\n", id, content, date, likes, tags)
	fmt.Println("--------------------------------------------------")
}
