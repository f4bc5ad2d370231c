// Package postgres persists order snapshots in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"order-events-demo/domain/customer"
	"order-events-demo/domain/order"
	"order-events-demo/pkg/eventbus"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    status TEXT NOT NULL,
    data JSONB NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
`

// OrderRepository stores the JSON-encoded order snapshot per id.
type OrderRepository struct {
	db  *sql.DB
	bus *eventbus.Bus
}

// NewOrderRepository applies the schema and builds the repository. A nil
// bus means drained events are discarded.
func NewOrderRepository(db *sql.DB, bus *eventbus.Bus) (*OrderRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &OrderRepository{db: db, bus: bus}, nil
}

// Save upserts the order's snapshot, then drains and publishes its pending
// events in emission order, one publish at a time.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	state := o.Snapshot()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode order snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, data, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			status = EXCLUDED.status,
			data = EXCLUDED.data,
			updated_at = CURRENT_TIMESTAMP`,
		state.ID, state.CustomerID, state.Status, data)
	if err != nil {
		return fmt.Errorf("save order %s: %w", state.ID, err)
	}

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
	var data []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT data FROM orders WHERE id = $1", id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", id, err)
	}
	return decodeOrder(data)
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID customer.ID) ([]*order.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT data FROM orders WHERE customer_id = $1 ORDER BY updated_at", customerID.String())
	if err != nil {
		return nil, fmt.Errorf("load orders for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	orders := make([]*order.Order, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		o, err := decodeOrder(data)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Delete(ctx context.Context, id order.ID) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM orders WHERE id = $1", id.String()); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func decodeOrder(data []byte) (*order.Order, error) {
	var state order.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode order snapshot: %w", err)
	}
	return order.FromState(state)
}
