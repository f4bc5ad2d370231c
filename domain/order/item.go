package order

import (
	"strings"

	"order-events-demo/domain/shared"
)

// ProductID identifies a product referenced by an order item.
type ProductID string

// NewProductID validates and builds a ProductID.
func NewProductID(value string) (ProductID, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrEmptyProductID
	}
	return ProductID(value), nil
}

func (id ProductID) String() string { return string(id) }

// Item is a child entity of the Order aggregate. It has no identity outside
// its order; all access goes through the aggregate root.
type Item struct {
	productID ProductID
	quantity  int
	unitPrice shared.Money
}

func newItem(productID ProductID, quantity int, unitPrice shared.Money) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return &Item{productID: productID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i *Item) changeQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i.quantity = quantity
	return nil
}

func (i *Item) ProductID() ProductID    { return i.productID }
func (i *Item) Quantity() int           { return i.quantity }
func (i *Item) UnitPrice() shared.Money { return i.unitPrice }

// Subtotal is unit price times quantity, truncating fractional minor units.
func (i *Item) Subtotal() shared.Money {
	subtotal, _ := i.unitPrice.Multiply(float64(i.quantity))
	return subtotal
}
