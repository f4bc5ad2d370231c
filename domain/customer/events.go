package customer

import "order-events-demo/domain/shared"

// EventRegistered is the discriminator for RegisteredEvent.
const EventRegistered = "CustomerRegistered"

// RegisteredEvent is emitted when a customer is created.
type RegisteredEvent struct {
	shared.BaseEvent
	CustomerName string
	EmailAddress string
}

// NewRegisteredEvent builds the registration event for a customer.
func NewRegisteredEvent(id ID, name string, email Email) RegisteredEvent {
	return RegisteredEvent{
		BaseEvent:    shared.NewBaseEvent(id.String()),
		CustomerName: name,
		EmailAddress: email.String(),
	}
}

func (e RegisteredEvent) EventName() string { return EventRegistered }

func (e RegisteredEvent) Payload() map[string]any {
	return map[string]any{
		"name":  e.CustomerName,
		"email": e.EmailAddress,
	}
}
