package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/config"
)

func TestRedis_UnconfiguredFallsBackToMemory(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())
	defer r.Close()

	assert.False(t, r.Configured())
	assert.Error(t, r.Ping(context.Background()))

	list := r.RevocationList()
	_, ok := list.(*auth.MemoryRevocationList)
	require.True(t, ok)

	ctx := context.Background()
	require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))
	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestNewPostgres_RequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewPostgres_RejectsMalformedDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{DSN: "postgres://%zz"}, zap.NewNop())
	assert.Error(t, err)
}
