package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is an immutable record of a fact that already happened inside
// an aggregate. Consumers dispatch on EventName, the concrete-kind
// discriminator, rather than on dynamic type.
type DomainEvent interface {
	// EventID is a unique opaque token assigned at construction.
	EventID() string
	// OccurredAt is the construction timestamp.
	OccurredAt() time.Time
	// AggregateID identifies the aggregate the event originated from.
	AggregateID() string
	// EventName names the concrete event kind.
	EventName() string
	// Payload returns the event-specific data as key/value pairs,
	// used for logging and history snapshots.
	Payload() map[string]any
}

// BaseEvent carries the identity/time/origin stamp shared by every domain
// event. Concrete events embed it by value and stay immutable after
// construction.
type BaseEvent struct {
	eventID     string
	occurredAt  time.Time
	aggregateID string
}

// NewBaseEvent stamps a fresh event for the given aggregate.
func NewBaseEvent(aggregateID string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.NewString(),
		occurredAt:  time.Now(),
		aggregateID: aggregateID,
	}
}

func (e BaseEvent) EventID() string       { return e.eventID }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
