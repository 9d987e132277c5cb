package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"quizdash/internal/config"
	"quizdash/internal/infra/memory"
	"quizdash/internal/infra/postgres"
)

// NewSeedCmd loads the built-in categories and questions into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in question bank into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			db := openBunDB(cfg.Postgres.URL)
			defer db.Close()

			if err := postgres.Seed(cmd.Context(), db, memory.SeedCategories(), memory.SeedQuestions()); err != nil {
				return err
			}
			log.Printf("question bank seeded")
			return nil
		},
	}
}
