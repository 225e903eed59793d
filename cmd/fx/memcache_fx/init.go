package memcache_fx

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"hbnb/internal/config"
	mem "hbnb/pkg/memcache"
)

const purgeInterval = 10 * time.Minute

var Module = fx.Options(
	fx.Provide(provideRevokedTokens),
	fx.Invoke(startPurge),
)

func provideRevokedTokens(lc fx.Lifecycle, cfg *config.Config) (mem.RevokedTokenStore, error) {
	if cfg.RedisURL == "" {
		return mem.NewRevokedTokens(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := mem.NewRedisRevokedTokens(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	log.Info().Msg("revoked tokens stored in redis")
	return store, nil
}

// startPurge drops expired revocations in the background so the store does
// not grow with every logout.
func startPurge(lc fx.Lifecycle, store mem.RevokedTokenStore) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(purgeInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := store.Purge(); n > 0 {
							log.Debug().Int("purged", n).Msg("expired revoked tokens")
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
