package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList()
	now := time.Now()
	list.now = func() time.Time { return now }

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, list.Revoke(ctx, "", time.Minute))
	require.NoError(t, list.Revoke(ctx, "jti-2", 0))

	revoked, err = list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = list.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
