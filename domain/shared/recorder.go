package shared

// EventRecorder gives an aggregate the ability to accumulate domain events
// during state transitions and release them at save time. Aggregates embed
// it by value; it is not safe for concurrent use, matching the single-owner
// assumption for aggregates.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event to the pending buffer. Mutation methods call this
// after validating and applying the state change.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns a copy of the pending buffer without clearing it.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// PullDomainEvents drains the buffer: it returns all pending events in
// emission order and clears them. A second pull with no mutation in between
// returns an empty slice; events are never replayed.
func (r *EventRecorder) PullDomainEvents() []DomainEvent {
	events := r.DomainEvents()
	r.events = nil
	return events
}

// ClearDomainEvents discards the pending buffer.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
