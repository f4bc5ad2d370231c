package handler

import (
	"context"
	"fmt"

	"order-events-demo/domain/order"
	"order-events-demo/domain/shared"
	"order-events-demo/pkg/logger"
)

// SendOrderConfirmationEmail mails the customer a confirmation when an
// order is placed.
type SendOrderConfirmationEmail struct {
	email EmailService
	log   *logger.Logger
}

// NewSendOrderConfirmationEmail builds the handler. A nil email service
// makes the handler log instead of sending.
func NewSendOrderConfirmationEmail(email EmailService, log *logger.Logger) *SendOrderConfirmationEmail {
	if log == nil {
		log = logger.NewNop()
	}
	return &SendOrderConfirmationEmail{email: email, log: log}
}

func (h *SendOrderConfirmationEmail) HandlerName() string { return "SendOrderConfirmationEmail" }
func (h *SendOrderConfirmationEmail) HandlesEvent() string { return order.EventOrderPlaced }

func (h *SendOrderConfirmationEmail) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(order.PlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	if h.email == nil {
		h.log.Info("order confirmation email (no mailer configured)",
			"order_id", placed.AggregateID(), "customer_id", placed.CustomerID, "total", placed.TotalAmount)
		return nil
	}
	return h.email.SendOrderConfirmation(ctx, placed.AggregateID(), placed.CustomerID, placed.TotalAmount, placed.Items)
}

// NotifyInventorySystem reserves stock for every item of a placed order.
type NotifyInventorySystem struct {
	inventory InventoryService
	log       *logger.Logger
}

func NewNotifyInventorySystem(inventory InventoryService, log *logger.Logger) *NotifyInventorySystem {
	if log == nil {
		log = logger.NewNop()
	}
	return &NotifyInventorySystem{inventory: inventory, log: log}
}

func (h *NotifyInventorySystem) HandlerName() string { return "NotifyInventorySystem" }
func (h *NotifyInventorySystem) HandlesEvent() string { return order.EventOrderPlaced }

func (h *NotifyInventorySystem) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(order.PlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	for _, item := range placed.Items {
		if h.inventory == nil {
			h.log.Info("stock reservation (no inventory service configured)",
				"order_id", placed.AggregateID(), "product_id", item.ProductID, "quantity", item.Quantity)
			continue
		}
		if err := h.inventory.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("reserve stock for %s: %w", item.ProductID, err)
		}
	}
	return nil
}

// UpdateAnalytics records a placed order with the analytics service.
type UpdateAnalytics struct {
	analytics AnalyticsService
	log       *logger.Logger
}

func NewUpdateAnalytics(analytics AnalyticsService, log *logger.Logger) *UpdateAnalytics {
	if log == nil {
		log = logger.NewNop()
	}
	return &UpdateAnalytics{analytics: analytics, log: log}
}

func (h *UpdateAnalytics) HandlerName() string { return "UpdateAnalytics" }
func (h *UpdateAnalytics) HandlesEvent() string { return order.EventOrderPlaced }

func (h *UpdateAnalytics) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(order.PlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	if h.analytics == nil {
		h.log.Info("analytics update (no analytics service configured)",
			"order_id", placed.AggregateID(), "total", placed.TotalAmount)
		return nil
	}
	return h.analytics.RecordOrder(ctx, placed.AggregateID(), placed.CustomerID, placed.TotalAmount, placed.PlacedAt)
}
