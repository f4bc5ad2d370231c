package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-events-demo/domain/shared"
)

type pingEvent struct {
	shared.BaseEvent
}

func newPingEvent(aggregateID string) pingEvent {
	return pingEvent{BaseEvent: shared.NewBaseEvent(aggregateID)}
}

func (e pingEvent) EventName() string { return "Ping" }

func (e pingEvent) Payload() map[string]any {
	return map[string]any{"aggregateId": e.AggregateID()}
}

// stubHandler records every event it sees, optionally failing each call.
type stubHandler struct {
	name  string
	event string
	err   error

	mu   sync.Mutex
	seen []shared.DomainEvent
}

func (h *stubHandler) HandlerName() string  { return h.name }
func (h *stubHandler) HandlesEvent() string { return h.event }

func (h *stubHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.seen = append(h.seen, event)
	return nil
}

func (h *stubHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.seen)
}

type capturingReporter struct {
	mu       sync.Mutex
	handlers []string
	errs     []error
}

func (r *capturingReporter) ReportFailure(handlerName string, _ shared.DomainEvent, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, handlerName)
	r.errs = append(r.errs, err)
}

func TestPublishFansOutToAllHandlers(t *testing.T) {
	bus := New()
	first := &stubHandler{name: "first", event: "Ping"}
	second := &stubHandler{name: "second", event: "Ping"}
	other := &stubHandler{name: "other", event: "Pong"}
	bus.Subscribe(first)
	bus.Subscribe(second)
	bus.Subscribe(other)

	bus.Publish(context.Background(), newPingEvent("agg-1"))

	assert.Equal(t, 1, first.callCount())
	assert.Equal(t, 1, second.callCount())
	assert.Equal(t, 0, other.callCount(), "handlers for other kinds must not fire")
}

func TestPublishWithNoHandlersStillRecordsHistory(t *testing.T) {
	bus := New()

	bus.Publish(context.Background(), newPingEvent("agg-1"))

	history := bus.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Ping", history[0].EventName())
}

func TestFailingHandlerDoesNotBlockSiblings(t *testing.T) {
	boom := errors.New("smtp unreachable")

	t.Run("concurrent", func(t *testing.T) {
		bus := New()
		failing := &stubHandler{name: "failing", event: "Ping", err: boom}
		healthy := &stubHandler{name: "healthy", event: "Ping"}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		bus.Publish(context.Background(), newPingEvent("agg-1"))

		assert.Equal(t, 1, healthy.callCount())
	})

	t.Run("sync continues past the failure", func(t *testing.T) {
		bus := New()
		failing := &stubHandler{name: "failing", event: "Ping", err: boom}
		healthy := &stubHandler{name: "healthy", event: "Ping"}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		bus.PublishSync(context.Background(), newPingEvent("agg-1"))

		assert.Equal(t, 1, healthy.callCount())
	})
}

func TestFailuresReachTheReporter(t *testing.T) {
	boom := errors.New("inventory api down")
	reporter := &capturingReporter{}
	bus := New(WithErrorReporter(reporter))
	bus.Subscribe(&stubHandler{name: "failing", event: "Ping", err: boom})
	bus.Subscribe(&stubHandler{name: "healthy", event: "Ping"})

	bus.PublishSync(context.Background(), newPingEvent("agg-1"))

	require.Len(t, reporter.handlers, 1)
	assert.Equal(t, "failing", reporter.handlers[0])
	assert.ErrorIs(t, reporter.errs[0], boom)
}

func TestDuplicateSubscriptionInvokedPerRegistration(t *testing.T) {
	bus := New()
	h := &stubHandler{name: "dup", event: "Ping"}
	bus.Subscribe(h)
	bus.Subscribe(h)
	require.Equal(t, 2, bus.HandlerCount("Ping"))

	bus.PublishSync(context.Background(), newPingEvent("agg-1"))

	assert.Equal(t, 2, h.callCount())
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	h := &stubHandler{name: "dup", event: "Ping"}
	bus.Subscribe(h)
	bus.Subscribe(h)

	bus.Unsubscribe(h)
	assert.Equal(t, 1, bus.HandlerCount("Ping"), "only the first registration is removed")

	bus.Unsubscribe(h)
	assert.Equal(t, 0, bus.HandlerCount("Ping"))

	// Unknown handler is a no-op.
	bus.Unsubscribe(&stubHandler{name: "stranger", event: "Ping"})
	assert.Equal(t, 0, bus.HandlerCount("Ping"))
}

func TestPublishSyncRunsInRegistrationOrder(t *testing.T) {
	bus := New()
	var order []string
	var mu sync.Mutex
	for _, name := range []string{"a", "b", "c"} {
		name := name
		bus.Subscribe(&orderedHandler{name: name, record: func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}})
	}

	bus.PublishSync(context.Background(), newPingEvent("agg-1"))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

type orderedHandler struct {
	name   string
	record func()
}

func (h *orderedHandler) HandlerName() string  { return h.name }
func (h *orderedHandler) HandlesEvent() string { return "Ping" }

func (h *orderedHandler) Handle(context.Context, shared.DomainEvent) error {
	h.record()
	return nil
}

func TestHistory(t *testing.T) {
	bus := New()
	bus.Subscribe(&stubHandler{name: "failing", event: "Ping", err: errors.New("boom")})

	first := newPingEvent("agg-1")
	second := newPingEvent("agg-2")
	bus.Publish(context.Background(), first)
	bus.PublishSync(context.Background(), second)

	history := bus.History()
	require.Len(t, history, 2, "history records attempts even when delivery fails")
	assert.Equal(t, "agg-1", history[0].AggregateID())
	assert.Equal(t, "agg-2", history[1].AggregateID())

	// The returned slice is a copy.
	history[0] = nil
	assert.NotNil(t, bus.History()[0])

	bus.ClearHistory()
	assert.Empty(t, bus.History())
}

func TestConcurrentPublish(t *testing.T) {
	bus := New()
	h := &stubHandler{name: "counter", event: "Ping"}
	bus.Subscribe(h)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), newPingEvent("agg-1"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, h.callCount())
	assert.Len(t, bus.History(), 20)
}
