package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hbnb/internal/config"
	"hbnb/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile string
		cfg     *config.Config
	)

	root := &cobra.Command{
		Use:           "hbnb",
		Short:         "Short-term rental listing API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// a missing .env is fine, the environment may be set directly
			_ = godotenv.Load(envFile)

			cfg = config.Load()
			logger.Init(cfg.LogLevel, cfg.Debug)
			return cfg.Validate()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	serve := newServeCmd(func() *config.Config { return cfg })
	root.AddCommand(serve, newSeedCmd(func() *config.Config { return cfg }), newMigrateCmd(func() *config.Config { return cfg }))

	// running the binary bare starts the server
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}
