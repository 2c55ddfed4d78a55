package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventUserUpdated            EventType = "user_updated"
	EventUserDeleted            EventType = "user_deleted"
	EventUserSignedIn           EventType = "user_signed_in"
	EventUserSignedOut          EventType = "user_signed_out"
	EventCustomerServiceCreated EventType = "customer_service_created"
	EventCustomerServiceUpdated EventType = "customer_service_updated"
	EventCustomerServiceDeleted EventType = "customer_service_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	ActorID     string    `json:"actor_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Payload     any       `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, aggregateID, actorID string, payload any) Event {
	return Event{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Type:        eventType,
		AggregateID: aggregateID,
		ActorID:     actorID,
		Timestamp:   time.Now().UTC(),
		Payload:     payload,
	}
}

// UserChangedPayload lists the fields a user update touched.
type UserChangedPayload struct {
	Fields []string `json:"fields"`
}

// CustomerServicePayload describes a listing event.
type CustomerServicePayload struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}
