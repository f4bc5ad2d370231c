package order

import (
	"time"

	"order-events-demo/domain/customer"
	"order-events-demo/domain/shared"
)

// Event kind discriminators. Handlers subscribe on these.
const (
	EventOrderCreated   = "OrderCreated"
	EventOrderItemAdded = "OrderItemAdded"
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCancelled = "OrderCancelled"
	EventOrderShipped   = "OrderShipped"
)

// ItemSnapshot is the immutable item view carried inside events and order
// summaries.
type ItemSnapshot struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// CreatedEvent is emitted when a draft order comes into existence.
type CreatedEvent struct {
	shared.BaseEvent
	CustomerID string
}

func NewCreatedEvent(id ID, customerID customer.ID) CreatedEvent {
	return CreatedEvent{
		BaseEvent:  shared.NewBaseEvent(id.String()),
		CustomerID: customerID.String(),
	}
}

func (e CreatedEvent) EventName() string { return EventOrderCreated }

func (e CreatedEvent) Payload() map[string]any {
	return map[string]any{"customer_id": e.CustomerID}
}

// ItemAddedEvent is emitted when a product is added to a draft order.
type ItemAddedEvent struct {
	shared.BaseEvent
	ProductID string
	Quantity  int
	UnitPrice int64
	Currency  string
}

func NewItemAddedEvent(id ID, productID ProductID, quantity int, unitPrice shared.Money) ItemAddedEvent {
	return ItemAddedEvent{
		BaseEvent: shared.NewBaseEvent(id.String()),
		ProductID: productID.String(),
		Quantity:  quantity,
		UnitPrice: unitPrice.Amount(),
		Currency:  unitPrice.Currency(),
	}
}

func (e ItemAddedEvent) EventName() string { return EventOrderItemAdded }

func (e ItemAddedEvent) Payload() map[string]any {
	return map[string]any{
		"product_id": e.ProductID,
		"quantity":   e.Quantity,
		"unit_price": e.UnitPrice,
	}
}

// PlacedEvent is emitted when a draft order is confirmed. It carries a full
// snapshot of the items and the computed total at placement time.
type PlacedEvent struct {
	shared.BaseEvent
	CustomerID  string
	TotalAmount int64
	Currency    string
	Items       []ItemSnapshot
	PlacedAt    time.Time
}

func NewPlacedEvent(id ID, customerID customer.ID, total shared.Money, items []ItemSnapshot, placedAt time.Time) PlacedEvent {
	return PlacedEvent{
		BaseEvent:   shared.NewBaseEvent(id.String()),
		CustomerID:  customerID.String(),
		TotalAmount: total.Amount(),
		Currency:    total.Currency(),
		Items:       items,
		PlacedAt:    placedAt,
	}
}

func (e PlacedEvent) EventName() string { return EventOrderPlaced }

func (e PlacedEvent) Payload() map[string]any {
	return map[string]any{
		"customer_id":  e.CustomerID,
		"total_amount": e.TotalAmount,
		"items":        e.Items,
		"placed_at":    e.PlacedAt.Format(time.RFC3339),
	}
}

// CancelledEvent is emitted when an order is cancelled.
type CancelledEvent struct {
	shared.BaseEvent
	CustomerID  string
	Reason      string
	CancelledAt time.Time
}

func NewCancelledEvent(id ID, customerID customer.ID, reason string, cancelledAt time.Time) CancelledEvent {
	return CancelledEvent{
		BaseEvent:   shared.NewBaseEvent(id.String()),
		CustomerID:  customerID.String(),
		Reason:      reason,
		CancelledAt: cancelledAt,
	}
}

func (e CancelledEvent) EventName() string { return EventOrderCancelled }

func (e CancelledEvent) Payload() map[string]any {
	return map[string]any{
		"customer_id":  e.CustomerID,
		"reason":       e.Reason,
		"cancelled_at": e.CancelledAt.Format(time.RFC3339),
	}
}

// ShippedEvent is emitted when a paid order is shipped.
type ShippedEvent struct {
	shared.BaseEvent
	TrackingNumber string
	ShippedAt      time.Time
}

func NewShippedEvent(id ID, trackingNumber string, shippedAt time.Time) ShippedEvent {
	return ShippedEvent{
		BaseEvent:      shared.NewBaseEvent(id.String()),
		TrackingNumber: trackingNumber,
		ShippedAt:      shippedAt,
	}
}

func (e ShippedEvent) EventName() string { return EventOrderShipped }

func (e ShippedEvent) Payload() map[string]any {
	return map[string]any{
		"tracking_number": e.TrackingNumber,
		"shipped_at":      e.ShippedAt.Format(time.RFC3339),
	}
}
