// Package memory provides an in-memory order repository for tests and
// demos.
package memory

import (
	"context"
	"fmt"
	"sync"

	"order-events-demo/domain/customer"
	"order-events-demo/domain/order"
	"order-events-demo/pkg/eventbus"
)

// OrderRepository keeps order snapshots in a map. Save replaces the stored
// snapshot and then flushes the aggregate's pending events to the bus.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]order.State
	bus    *eventbus.Bus
}

// NewOrderRepository builds the repository. A nil bus means drained events
// are discarded.
func NewOrderRepository(bus *eventbus.Bus) *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]order.State),
		bus:    bus,
	}
}

// Save stores the order's snapshot under its id, then drains the pending
// events and publishes them in emission order, waiting for each event's
// full fan-out before the next. Persistence is never rolled back for
// delivery problems; publish absorbs handler failures.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	r.orders[o.ID().String()] = o.Snapshot()
	r.mu.Unlock()

	// Drain even without a bus so stale events cannot leak into a later save.
	events := o.PullDomainEvents()
	if r.bus == nil {
		return nil
	}
	for _, event := range events {
		r.bus.Publish(ctx, event)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id order.ID) (*order.Order, error) {
	r.mu.RLock()
	state, ok := r.orders[id.String()]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, id)
	}
	return order.FromState(state)
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID customer.ID) ([]*order.Order, error) {
	r.mu.RLock()
	states := make([]order.State, 0)
	for _, state := range r.orders {
		if state.CustomerID == customerID.String() {
			states = append(states, state)
		}
	}
	r.mu.RUnlock()

	orders := make([]*order.Order, 0, len(states))
	for _, state := range states {
		o, err := order.FromState(state)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id order.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id.String())
	return nil
}

// Clear removes all stored orders. For tests.
func (r *OrderRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[string]order.State)
}

// Size returns the number of stored orders. For tests.
func (r *OrderRepository) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
