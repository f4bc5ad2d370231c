package order

import "errors"

// Business rule errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrderID       = errors.New("order id must not be empty")
	ErrEmptyProductID     = errors.New("product id must not be empty")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrItemNotFound       = errors.New("item not found in order")
	ErrItemLimitExceeded  = errors.New("order cannot hold more distinct items")
	ErrOrderNotModifiable = errors.New("only draft orders can be modified")
	ErrEmptyOrder         = errors.New("order must have at least one item")
	ErrOrderNotDraft      = errors.New("only draft orders can be placed")
	ErrOrderNotPlaced     = errors.New("order must be placed before payment")
	ErrOrderNotPaid       = errors.New("order must be paid before shipping")
	ErrOrderNotShipped    = errors.New("order must be shipped before delivery")
	ErrCannotCancel       = errors.New("order can no longer be cancelled")
)
