package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/events"
)

// AuditService writes every domain event to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     loggerOrNop(logger).Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventUserUpdated,
		events.EventUserDeleted,
		events.EventUserSignedIn,
		events.EventUserSignedOut,
	} {
		a.dispatcher.Subscribe(eventType, a.handleUserEvent)
	}
	for _, eventType := range []events.EventType{
		events.EventCustomerServiceCreated,
		events.EventCustomerServiceUpdated,
		events.EventCustomerServiceDeleted,
	} {
		a.dispatcher.Subscribe(eventType, a.handleCustomerServiceEvent)
	}
}

func (a *AuditService) handleUserEvent(_ context.Context, event events.Event) error {
	fields := a.baseFields(event)
	if payload, ok := event.Payload.(events.UserChangedPayload); ok {
		fields = append(fields, zap.Strings("fields", payload.Fields))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) handleCustomerServiceEvent(_ context.Context, event events.Event) error {
	fields := a.baseFields(event)
	if payload, ok := event.Payload.(events.CustomerServicePayload); ok {
		fields = append(fields, zap.String("owner_id", payload.OwnerID), zap.String("name", payload.Name))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) baseFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("aggregate_id", event.AggregateID),
		zap.String("actor_id", event.ActorID),
		zap.Time("timestamp", event.Timestamp),
	}
}
