// Package application orchestrates order use cases on top of the domain
// layer and the repository port.
package application

import (
	"context"
	"time"

	"order-events-demo/domain/customer"
	"order-events-demo/domain/order"
	"order-events-demo/domain/shared"
	"order-events-demo/pkg/logger"
)

// OrderSummary is the read view returned by query operations.
type OrderSummary struct {
	OrderID        string               `json:"order_id"`
	CustomerID     string               `json:"customer_id"`
	Status         string               `json:"status"`
	TotalAmount    int64                `json:"total_amount"`
	TotalFormatted string               `json:"total_formatted"`
	ItemCount      int                  `json:"item_count"`
	Items          []order.ItemSnapshot `json:"items"`
	PlacedAt       *time.Time           `json:"placed_at,omitempty"`
}

// OrderService implements the order use cases. Guard violations and
// not-found conditions surface directly to the caller; event delivery is
// the repository's concern.
type OrderService struct {
	orders order.Repository
	log    *logger.Logger
}

func NewOrderService(orders order.Repository, log *logger.Logger) *OrderService {
	if log == nil {
		log = logger.NewNop()
	}
	return &OrderService{orders: orders, log: log}
}

// CreateOrder creates a draft order with the given items and returns its id.
func (s *OrderService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	customerID, err := customer.NewID(cmd.CustomerID)
	if err != nil {
		return "", err
	}

	o := order.Create(customerID)
	for _, input := range cmd.Items {
		if err := s.addItem(o, input); err != nil {
			return "", err
		}
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return "", err
	}
	s.log.Info("order created", "order_id", o.ID().String(), "customer_id", cmd.CustomerID, "items", o.ItemCount())
	return o.ID().String(), nil
}

// AddItem adds one line to an existing draft order.
func (s *OrderService) AddItem(ctx context.Context, cmd AddItemCommand) error {
	o, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if err := s.addItem(o, cmd.Item); err != nil {
		return err
	}
	return s.orders.Save(ctx, o)
}

// PlaceOrder confirms a draft order.
func (s *OrderService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) error {
	o, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if err := o.Place(); err != nil {
		return err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}
	s.log.Info("order placed", "order_id", cmd.OrderID, "total", o.TotalAmount().Format())
	return nil
}

// CancelOrder cancels a draft or placed order.
func (s *OrderService) CancelOrder(ctx context.Context, cmd CancelOrderCommand) error {
	o, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if err := o.Cancel(cmd.Reason); err != nil {
		return err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}
	s.log.Info("order cancelled", "order_id", cmd.OrderID, "reason", cmd.Reason)
	return nil
}

// GetOrderSummary returns the read view for one order.
func (s *OrderService) GetOrderSummary(ctx context.Context, orderID string) (*OrderSummary, error) {
	o, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return summarize(o), nil
}

// ListCustomerOrders returns the read views of all orders for a customer.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]*OrderSummary, error) {
	id, err := customer.NewID(customerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindByCustomerID(ctx, id)
	if err != nil {
		return nil, err
	}
	summaries := make([]*OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, summarize(o))
	}
	return summaries, nil
}

func (s *OrderService) findOrder(ctx context.Context, orderID string) (*order.Order, error) {
	id, err := order.NewID(orderID)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) addItem(o *order.Order, input ItemInput) error {
	productID, err := order.NewProductID(input.ProductID)
	if err != nil {
		return err
	}
	unitPrice, err := shared.FromYen(input.UnitPrice)
	if err != nil {
		return err
	}
	return o.AddItem(productID, input.Quantity, unitPrice)
}

func summarize(o *order.Order) *OrderSummary {
	return &OrderSummary{
		OrderID:        o.ID().String(),
		CustomerID:     o.CustomerID().String(),
		Status:         string(o.Status()),
		TotalAmount:    o.TotalAmount().Amount(),
		TotalFormatted: o.TotalAmount().Format(),
		ItemCount:      o.ItemCount(),
		Items:          o.Items(),
		PlacedAt:       o.PlacedAt(),
	}
}
