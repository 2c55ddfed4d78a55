package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationNames_Ordered(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0001_users.sql",
		"0002_customer_services.sql",
		"0003_customer_service_phone_region.sql",
	}, names)
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}
