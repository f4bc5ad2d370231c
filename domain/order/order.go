package order

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"order-events-demo/domain/customer"
	"order-events-demo/domain/shared"
)

// MaxItems is the largest number of distinct products one order may hold.
const MaxItems = 100

// Status is the order lifecycle state. Transitions only move forward:
// DRAFT -> PLACED -> PAID -> SHIPPED -> DELIVERED, with CANCELLED reachable
// from DRAFT or PLACED only.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPlaced    Status = "PLACED"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// ID identifies an order.
type ID string

// NewID validates and builds an order ID.
func NewID(value string) (ID, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrEmptyOrderID
	}
	return ID(value), nil
}

// GenerateID returns a fresh order ID.
func GenerateID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Order is the aggregate root for the order consistency boundary. Items are
// only reachable through it, and every state change is guarded here.
type Order struct {
	shared.EventRecorder

	id         ID
	customerID customer.ID
	items      []*Item
	status     Status
	total      shared.Money
	placedAt   *time.Time
}

// NewOrder builds a draft order with an explicit ID.
func NewOrder(id ID, customerID customer.ID) *Order {
	o := &Order{
		id:         id,
		customerID: customerID,
		status:     StatusDraft,
		total:      shared.Zero("JPY"),
	}
	o.Record(NewCreatedEvent(o.id, o.customerID))
	return o
}

// Create builds a draft order with a generated ID.
func Create(customerID customer.ID) *Order {
	return NewOrder(GenerateID(), customerID)
}

func (o *Order) ID() ID                    { return o.id }
func (o *Order) CustomerID() customer.ID   { return o.customerID }
func (o *Order) Status() Status            { return o.status }
func (o *Order) TotalAmount() shared.Money { return o.total }
func (o *Order) ItemCount() int            { return len(o.items) }

// PlacedAt returns the placement timestamp, or nil while the order is not
// yet placed.
func (o *Order) PlacedAt() *time.Time {
	if o.placedAt == nil {
		return nil
	}
	t := *o.placedAt
	return &t
}

// Items returns a snapshot of the current items; callers never receive the
// underlying entities.
func (o *Order) Items() []ItemSnapshot {
	snapshots := make([]ItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		snapshots = append(snapshots, ItemSnapshot{
			ProductID: item.productID.String(),
			Quantity:  item.quantity,
			UnitPrice: item.unitPrice.Amount(),
			Subtotal:  item.Subtotal().Amount(),
		})
	}
	return snapshots
}

// AddItem adds a product to a draft order. Adding a product that is already
// present merges the quantities instead of growing the item list.
func (o *Order) AddItem(productID ProductID, quantity int, unitPrice shared.Money) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if len(o.items) > 0 && unitPrice.Currency() != o.total.Currency() {
		return shared.ErrCurrencyMismatch
	}

	if existing := o.findItem(productID); existing != nil {
		if err := existing.changeQuantity(existing.quantity + quantity); err != nil {
			return err
		}
	} else {
		if len(o.items) >= MaxItems {
			return ErrItemLimitExceeded
		}
		item, err := newItem(productID, quantity, unitPrice)
		if err != nil {
			return err
		}
		if len(o.items) == 0 {
			o.total = shared.Zero(unitPrice.Currency())
		}
		o.items = append(o.items, item)
	}

	if err := o.recalculateTotal(); err != nil {
		return err
	}
	o.Record(NewItemAddedEvent(o.id, productID, quantity, unitPrice))
	return nil
}

// RemoveItem removes a product from a draft order.
func (o *Order) RemoveItem(productID ProductID) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	index := o.findItemIndex(productID)
	if index < 0 {
		return ErrItemNotFound
	}
	o.items = append(o.items[:index], o.items[index+1:]...)
	return o.recalculateTotal()
}

// ChangeItemQuantity sets a new quantity for a product in a draft order.
func (o *Order) ChangeItemQuantity(productID ProductID, quantity int) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	item := o.findItem(productID)
	if item == nil {
		return ErrItemNotFound
	}
	if err := item.changeQuantity(quantity); err != nil {
		return err
	}
	return o.recalculateTotal()
}

// Place confirms a draft order with at least one item. It stamps the
// placement time and emits an event carrying the item snapshot and total.
func (o *Order) Place() error {
	if o.status != StatusDraft {
		return ErrOrderNotDraft
	}
	if len(o.items) == 0 {
		return ErrEmptyOrder
	}

	now := time.Now()
	o.status = StatusPlaced
	o.placedAt = &now
	o.Record(NewPlacedEvent(o.id, o.customerID, o.total, o.Items(), now))
	return nil
}

// MarkAsPaid records payment for a placed order.
func (o *Order) MarkAsPaid() error {
	if o.status != StatusPlaced {
		return ErrOrderNotPlaced
	}
	o.status = StatusPaid
	return nil
}

// Ship ships a paid order.
func (o *Order) Ship(trackingNumber string) error {
	if o.status != StatusPaid {
		return ErrOrderNotPaid
	}
	o.status = StatusShipped
	o.Record(NewShippedEvent(o.id, trackingNumber, time.Now()))
	return nil
}

// Deliver completes a shipped order.
func (o *Order) Deliver() error {
	if o.status != StatusShipped {
		return ErrOrderNotShipped
	}
	o.status = StatusDelivered
	return nil
}

// Cancel cancels an order that has not been paid, shipped or delivered.
// Paid and later orders go through a separate return/refund flow.
func (o *Order) Cancel(reason string) error {
	switch o.status {
	case StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return ErrCannotCancel
	}
	o.status = StatusCancelled
	o.Record(NewCancelledEvent(o.id, o.customerID, reason, time.Now()))
	return nil
}

func (o *Order) findItem(productID ProductID) *Item {
	if index := o.findItemIndex(productID); index >= 0 {
		return o.items[index]
	}
	return nil
}

func (o *Order) findItemIndex(productID ProductID) int {
	for i, item := range o.items {
		if item.productID == productID {
			return i
		}
	}
	return -1
}

// recalculateTotal recomputes the total from scratch after every item
// mutation; it is never patched incrementally.
func (o *Order) recalculateTotal() error {
	total := shared.Zero(o.total.Currency())
	for _, item := range o.items {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return err
		}
		total = sum
	}
	o.total = total
	return nil
}

func (o *Order) ensureModifiable() error {
	if o.status != StatusDraft {
		return ErrOrderNotModifiable
	}
	return nil
}
