package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hbnb/internal/config"
	"hbnb/internal/infra"
	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/seed"
)

func newSeedCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load countries and the configured admin into the selected repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if c.Repository == config.RepositoryMemory {
				return fmt.Errorf("nothing to seed: the memory repository does not outlive the process")
			}

			backend, err := repositories.NewBackend(c)
			if err != nil {
				return err
			}
			defer backend.Close()

			countries, err := repositories.NewRepository[db_models.Country](backend)
			if err != nil {
				return err
			}
			users, err := repositories.NewRepository[db_models.User](backend)
			if err != nil {
				return err
			}
			return seed.Run(cmd.Context(), c, countries, users)
		},
	}
}

func newMigrateCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()

			// OpenDatabase migrates as part of opening
			db, err := infra.OpenDatabase(c)
			if err != nil {
				return err
			}
			defer infra.CloseDatabase(db)

			log.Info().Str("type", c.DatabaseType).Msg("schema is up to date")
			return nil
		},
	}
}
