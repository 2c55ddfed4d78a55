package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/directory-service/internal/events"
)

func TestAuditService_LogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserUpdated, "u1", "u1",
		events.UserChangedPayload{Fields: []string{"name"}})))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventCustomerServiceCreated, "c1", "u1",
		events.CustomerServicePayload{OwnerID: "u1", Name: "Bakery"})))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, string(events.EventUserUpdated), entries[0].Message)
	assert.Equal(t, "u1", entries[0].ContextMap()["aggregate_id"])
	assert.Equal(t, "Bakery", entries[1].ContextMap()["name"])
}
