package main

import (
	"fmt"

	"showroom-service/internal/db"
	"showroom-service/internal/repository/postgres"
	"showroom-service/internal/seed"

	"github.com/spf13/cobra"
)

var seedMigrate bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample vignettes and products",
	Long: `Load the sample showroom: two vignettes and five products placed in the
first vignette. Nothing is inserted when an active vignette already exists.
Categories are created by the migrations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if seedMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
		}

		res, err := seed.Run(ctx, postgres.NewVignetteRepository(pool), postgres.NewProductRepository(pool))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.Skipped {
			fmt.Fprintln(out, "Sample data already exists, nothing to do")
			return nil
		}
		fmt.Fprintf(out, "✅ Added %d vignettes, %d products, %d links\n", res.Vignettes, res.Products, res.Links)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", true, "Apply migrations before seeding")
}
