package order

import (
	"context"

	"order-events-demo/domain/customer"
)

// Repository persists Order aggregates. A successful Save also drains the
// order's pending domain events and hands them to the event bus, one publish
// at a time, in emission order.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	// FindByID returns ErrOrderNotFound when no order exists under the id.
	FindByID(ctx context.Context, id ID) (*Order, error)
	FindByCustomerID(ctx context.Context, customerID customer.ID) ([]*Order, error)
	Delete(ctx context.Context, id ID) error
}
