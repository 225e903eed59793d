package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"hbnb/cmd/fx/amenity_fx"
	"hbnb/cmd/fx/config_fx"
	"hbnb/cmd/fx/controllers_fx"
	"hbnb/cmd/fx/dashboard"
	"hbnb/cmd/fx/db_fx"
	"hbnb/cmd/fx/location_fx"
	"hbnb/cmd/fx/memcache_fx"
	"hbnb/cmd/fx/place_fx"
	"hbnb/cmd/fx/review_fx"
	"hbnb/cmd/fx/user_fx"
	"hbnb/internal/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if port != "" {
				c.Port = port
			}

			app := fx.New(
				fx.WithLogger(func() fxevent.Logger {
					if c.Debug {
						return &fxevent.ConsoleLogger{W: log.Logger}
					}
					return fxevent.NopLogger
				}),
				config_fx.Module(c),
				db_fx.Module,
				memcache_fx.Module,
				user_fx.Module,
				location_fx.Module,
				amenity_fx.Module,
				place_fx.Module,
				review_fx.Module,
				dashboard.Module,
				controllers_fx.Module,

				fx.Invoke(StartServer),
			)
			if err := app.Err(); err != nil {
				return err
			}

			app.Run()
			return nil
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides PORT")
	return cmd
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Str("repository", cfg.Repository).Msg("starting HTTP server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}
