package application

// ItemInput describes one order line in a command, with the unit price in
// minor currency units (yen).
type ItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// CreateOrderCommand creates a draft order for a customer.
type CreateOrderCommand struct {
	CustomerID string      `json:"customer_id"`
	Items      []ItemInput `json:"items"`
}

// AddItemCommand adds one line to an existing draft order.
type AddItemCommand struct {
	OrderID string    `json:"order_id"`
	Item    ItemInput `json:"item"`
}

// PlaceOrderCommand confirms a draft order.
type PlaceOrderCommand struct {
	OrderID string `json:"order_id"`
}

// CancelOrderCommand cancels a draft or placed order.
type CancelOrderCommand struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}
