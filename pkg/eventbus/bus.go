// Package eventbus routes domain events to registered handlers, either
// sequentially or fanned out, with per-handler fault isolation and an
// append-only history of everything published.
package eventbus

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"order-events-demo/domain/shared"
	"order-events-demo/pkg/logger"
)

// Handler consumes domain events of one concrete kind.
type Handler interface {
	// HandlerName identifies the handler in failure reports.
	HandlerName() string
	// HandlesEvent returns the event-kind discriminator this handler
	// subscribes to.
	HandlesEvent() string
	// Handle processes one event. A returned error is absorbed and
	// reported by the bus; it never reaches the publisher.
	Handle(ctx context.Context, event shared.DomainEvent) error
}

// ErrorReporter receives every handler failure the bus absorbs.
type ErrorReporter interface {
	ReportFailure(handlerName string, event shared.DomainEvent, err error)
}

// Bus is an in-process event bus. Handlers are dispatched in registration
// order per event kind on the sequential path; the fan-out path gives no
// ordering guarantee between handlers but always waits for all of them.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	history  []shared.DomainEvent

	log      *logger.Logger
	reporter ErrorReporter
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for dispatch diagnostics and for the
// default failure reporter.
func WithLogger(log *logger.Logger) Option {
	return func(b *Bus) {
		b.log = log
	}
}

// WithErrorReporter sets the collaborator invoked on every absorbed handler
// failure, replacing the default log-backed reporter.
func WithErrorReporter(reporter ErrorReporter) Option {
	return func(b *Bus) {
		b.reporter = reporter
	}
}

// New builds an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		handlers: make(map[string][]Handler),
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.reporter == nil {
		b.reporter = &logReporter{log: b.log}
	}
	return b
}

// Subscribe registers a handler under the event kind it declares. The same
// handler may be registered more than once and is then invoked once per
// registration.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := h.HandlesEvent()
	b.handlers[name] = append(b.handlers[name], h)
	b.log.Debug("handler subscribed", "handler", h.HandlerName(), "event", name)
}

// Unsubscribe removes the first matching registration of the handler for
// its declared event kind. Unknown handlers are a no-op.
func (b *Bus) Unsubscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := h.HandlesEvent()
	registered := b.handlers[name]
	for i, candidate := range registered {
		if candidate == h {
			b.handlers[name] = append(registered[:i:i], registered[i+1:]...)
			b.log.Debug("handler unsubscribed", "handler", h.HandlerName(), "event", name)
			return
		}
	}
}

// HandlerCount returns the number of registrations for an event kind.
func (b *Bus) HandlerCount(eventName string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventName])
}

// Publish dispatches an event to all handlers for its kind concurrently and
// waits for every one of them to finish. Handler failures are absorbed and
// reported; Publish itself never fails because of them, so one unreachable
// subscriber cannot block or roll back its siblings.
func (b *Bus) Publish(ctx context.Context, event shared.DomainEvent) {
	handlers := b.record(event)
	b.log.Debug("publishing event",
		"event", event.EventName(), "aggregate_id", event.AggregateID(), "handlers", len(handlers))

	g := new(errgroup.Group)
	for _, h := range handlers {
		h := h
		g.Go(func() error {
			b.invoke(ctx, h, event)
			return nil
		})
	}
	_ = g.Wait()
}

// PublishSync dispatches an event to all handlers for its kind one at a
// time, in registration order. A failure is absorbed and reported and the
// loop continues with the next handler.
func (b *Bus) PublishSync(ctx context.Context, event shared.DomainEvent) {
	handlers := b.record(event)
	b.log.Debug("publishing event (sync)",
		"event", event.EventName(), "aggregate_id", event.AggregateID(), "handlers", len(handlers))

	for _, h := range handlers {
		b.invoke(ctx, h, event)
	}
}

// History returns a copy of every event published so far, in publication
// order. History reflects publication attempts, not delivery outcomes.
func (b *Bus) History() []shared.DomainEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]shared.DomainEvent, len(b.history))
	copy(out, b.history)
	return out
}

// ClearHistory resets the history log.
func (b *Bus) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}

// record appends the event to history and resolves the handler list for its
// kind under one lock, so history order matches publication order.
func (b *Bus) record(event shared.DomainEvent) []Handler {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = append(b.history, event)
	registered := b.handlers[event.EventName()]
	handlers := make([]Handler, len(registered))
	copy(handlers, registered)
	return handlers
}

func (b *Bus) invoke(ctx context.Context, h Handler, event shared.DomainEvent) {
	if err := h.Handle(ctx, event); err != nil {
		b.reporter.ReportFailure(h.HandlerName(), event, err)
		return
	}
	b.log.Debug("handler processed event", "handler", h.HandlerName(), "event", event.EventName())
}

// logReporter is the default ErrorReporter; it logs the failure with the
// handler identity and a snapshot of the event.
type logReporter struct {
	log *logger.Logger
}

func (r *logReporter) ReportFailure(handlerName string, event shared.DomainEvent, err error) {
	r.log.Error("event handler failed",
		"handler", handlerName,
		"event", event.EventName(),
		"event_id", event.EventID(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt(),
		"payload", event.Payload(),
		"error", err,
	)
}
