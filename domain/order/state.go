package order

import (
	"time"

	"order-events-demo/domain/customer"
	"order-events-demo/domain/shared"
)

// ItemState is the persistable form of one order item.
type ItemState struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Currency  string `json:"currency"`
}

// State is the persistable snapshot of an order, used by repository
// adapters. It carries no pending events.
type State struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Status     string      `json:"status"`
	Currency   string      `json:"currency"`
	PlacedAt   *time.Time  `json:"placed_at,omitempty"`
	Items      []ItemState `json:"items"`
}

// Snapshot captures the order's current state for persistence.
func (o *Order) Snapshot() State {
	items := make([]ItemState, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, ItemState{
			ProductID: item.productID.String(),
			Quantity:  item.quantity,
			UnitPrice: item.unitPrice.Amount(),
			Currency:  item.unitPrice.Currency(),
		})
	}
	return State{
		ID:         o.id.String(),
		CustomerID: o.customerID.String(),
		Status:     string(o.status),
		Currency:   o.total.Currency(),
		PlacedAt:   o.PlacedAt(),
		Items:      items,
	}
}

// FromState rehydrates an order from a persisted snapshot. The total is
// recomputed from the items rather than trusted from storage, and no events
// are recorded.
func FromState(s State) (*Order, error) {
	id, err := NewID(s.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := customer.NewID(s.CustomerID)
	if err != nil {
		return nil, err
	}

	currency := s.Currency
	if currency == "" {
		currency = "JPY"
	}
	o := &Order{
		id:         id,
		customerID: customerID,
		status:     Status(s.Status),
		total:      shared.Zero(currency),
	}
	if s.PlacedAt != nil {
		t := *s.PlacedAt
		o.placedAt = &t
	}

	for _, is := range s.Items {
		productID, err := NewProductID(is.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice, err := shared.NewMoney(is.UnitPrice, is.Currency)
		if err != nil {
			return nil, err
		}
		item, err := newItem(productID, is.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		o.items = append(o.items, item)
	}
	if err := o.recalculateTotal(); err != nil {
		return nil, err
	}
	return o, nil
}
