package config_fx

import (
	"go.uber.org/fx"

	"hbnb/internal/config"
	"hbnb/pkg/utils"
)

// Module supplies a config that main already loaded, so logging can be set
// up before the container starts.
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(provideTokenManager))
}

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}
