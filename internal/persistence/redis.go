package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/config"
)

// Redis holds the optional go-redis client used for token revocation.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a client when REDIS_ADDR is set. An unreachable server is
// logged but not fatal; the readiness probe reports it.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not provided; token revocation falls back to process memory")
		return &Redis{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return &Redis{client: client}
}

// RevocationList returns a Redis-backed revocation list when a client exists
// and a process-local one otherwise.
func (r *Redis) RevocationList() auth.RevocationList {
	if !r.Configured() {
		return auth.NewMemoryRevocationList()
	}
	return auth.NewRedisRevocationList(r.client)
}

func (r *Redis) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Configured() {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}

// Configured reports whether a client was created.
func (r *Redis) Configured() bool {
	return r != nil && r.client != nil
}
