package mem

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	revokedKeyPrefix     = "hbnb:revoked:"
	revokedUserKeyPrefix = "hbnb:revoked-user:"
	redisOpTimeout   = 2 * time.Second
)

// RedisRevokedTokens shares revocations between processes. Each entry is a
// key whose TTL is the token's remaining lifetime, so redis expires it.
type RedisRevokedTokens struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevokedTokens connects using a redis:// URL and pings the server.
func NewRedisRevokedTokens(ctx context.Context, url string) (*RedisRevokedTokens, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisRevokedTokens{client: client, now: time.Now}, nil
}

func (s *RedisRevokedTokens) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		log.Error().Err(err).Str("jti", tokenID).Msg("redis revoke failed")
	}
}

// IsRevoked treats an unreachable redis as revoked.
func (s *RedisRevokedTokens) IsRevoked(tokenID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		log.Error().Err(err).Str("jti", tokenID).Msg("redis revocation lookup failed")
		return true
	}
	return n > 0
}

func (s *RedisRevokedTokens) RevokeUser(userID string, at, until time.Time) {
	if userID == "" {
		return
	}
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := s.client.Set(ctx, revokedUserKeyPrefix+userID, at.UnixNano(), ttl).Err(); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("redis user revoke failed")
	}
}

// UserRevokedAt answers "now" when redis cannot be read, which rejects every
// token already issued to the user.
func (s *RedisRevokedTokens) UserRevokedAt(userID string) time.Time {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, revokedUserKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("redis user revocation lookup failed")
		return s.now()
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("bad user revocation entry")
		return s.now()
	}
	return time.Unix(0, nanos)
}

// Purge is a no-op, keys expire on their own.
func (s *RedisRevokedTokens) Purge() int {
	return 0
}

func (s *RedisRevokedTokens) Close() error {
	return s.client.Close()
}
