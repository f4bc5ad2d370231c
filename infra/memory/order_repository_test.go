package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-events-demo/domain/order"
	"order-events-demo/domain/shared"
	"order-events-demo/pkg/eventbus"
)

type captureHandler struct {
	event string

	mu   sync.Mutex
	seen []string
}

func (h *captureHandler) HandlerName() string  { return "capture-" + h.event }
func (h *captureHandler) HandlesEvent() string { return h.event }

func (h *captureHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, event.EventName())
	return nil
}

func givenDraftOrder(t *testing.T) *order.Order {
	t.Helper()
	o := order.Create("customer-001")
	productID, err := order.NewProductID("LAPTOP-001")
	require.NoError(t, err)
	require.NoError(t, o.AddItem(productID, 1, shared.MustYen(120000)))
	return o
}

func TestSaveFlushesEventsInEmissionOrder(t *testing.T) {
	bus := eventbus.New()
	repo := NewOrderRepository(bus)

	o := givenDraftOrder(t)
	require.NoError(t, o.Place())
	require.NoError(t, repo.Save(context.Background(), o))

	history := bus.History()
	require.Len(t, history, 3)
	assert.Equal(t, order.EventOrderCreated, history[0].EventName())
	assert.Equal(t, order.EventOrderItemAdded, history[1].EventName())
	assert.Equal(t, order.EventOrderPlaced, history[2].EventName())

	assert.Empty(t, o.DomainEvents(), "save drains the aggregate")

	// A second save publishes nothing new.
	require.NoError(t, repo.Save(context.Background(), o))
	assert.Len(t, bus.History(), 3)
}

func TestSaveWithNilBusStillDrains(t *testing.T) {
	repo := NewOrderRepository(nil)

	o := givenDraftOrder(t)
	require.NoError(t, repo.Save(context.Background(), o))
	assert.Empty(t, o.DomainEvents())

	// The snapshot is stored regardless.
	found, err := repo.FindByID(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, o.ID(), found.ID())
}

func TestFindByIDRehydrates(t *testing.T) {
	repo := NewOrderRepository(nil)

	o := givenDraftOrder(t)
	require.NoError(t, o.Place())
	require.NoError(t, repo.Save(context.Background(), o))

	found, err := repo.FindByID(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, found.Status())
	assert.Equal(t, o.TotalAmount(), found.TotalAmount())
	assert.Equal(t, 1, found.ItemCount())
	assert.Empty(t, found.DomainEvents(), "rehydration must not record events")
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewOrderRepository(nil)

	id, err := order.NewID("missing")
	require.NoError(t, err)
	_, err = repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestFindByCustomerID(t *testing.T) {
	repo := NewOrderRepository(nil)

	first := givenDraftOrder(t)
	second := givenDraftOrder(t)
	other := order.Create("customer-002")
	productID, err := order.NewProductID("MOUSE-001")
	require.NoError(t, err)
	require.NoError(t, other.AddItem(productID, 1, shared.MustYen(3000)))

	for _, o := range []*order.Order{first, second, other} {
		require.NoError(t, repo.Save(context.Background(), o))
	}

	orders, err := repo.FindByCustomerID(context.Background(), "customer-001")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = repo.FindByCustomerID(context.Background(), "customer-999")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDelete(t *testing.T) {
	repo := NewOrderRepository(nil)

	o := givenDraftOrder(t)
	require.NoError(t, repo.Save(context.Background(), o))
	require.Equal(t, 1, repo.Size())

	require.NoError(t, repo.Delete(context.Background(), o.ID()))
	assert.Equal(t, 0, repo.Size())

	_, err := repo.FindByID(context.Background(), o.ID())
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestSaveRoutesEventsToHandlers(t *testing.T) {
	bus := eventbus.New()
	placed := &captureHandler{event: order.EventOrderPlaced}
	bus.Subscribe(placed)
	repo := NewOrderRepository(bus)

	o := givenDraftOrder(t)
	require.NoError(t, o.Place())
	require.NoError(t, repo.Save(context.Background(), o))

	placed.mu.Lock()
	defer placed.mu.Unlock()
	assert.Equal(t, []string{order.EventOrderPlaced}, placed.seen)
}
