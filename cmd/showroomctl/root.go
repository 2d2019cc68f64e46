package main

import (
	"context"
	"fmt"
	"os"

	"showroom-service/internal/config"
	"showroom-service/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "showroomctl",
	Short: "Administration tool for the showroom catalog",
	Long: `showroomctl manages the showroom catalog database.

Commands:
  migrate      - Apply pending schema migrations
  seed         - Load sample vignettes and products
  create-user  - Create an administrator account`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if dbURL == "" {
			dbURL = config.Load().DatabaseURL
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(migrateCmd, seedCmd, createUserCmd)
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	return db.ConnectDB(ctx, db.PostgresConfig{URL: dbURL, MaxConns: 2})
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
