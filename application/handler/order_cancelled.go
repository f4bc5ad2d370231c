package handler

import (
	"context"
	"fmt"

	"order-events-demo/domain/order"
	"order-events-demo/domain/shared"
	"order-events-demo/pkg/logger"
)

// ReleaseInventory releases reserved stock when an order is cancelled.
type ReleaseInventory struct {
	inventory InventoryService
	log       *logger.Logger
}

func NewReleaseInventory(inventory InventoryService, log *logger.Logger) *ReleaseInventory {
	if log == nil {
		log = logger.NewNop()
	}
	return &ReleaseInventory{inventory: inventory, log: log}
}

func (h *ReleaseInventory) HandlerName() string { return "ReleaseInventory" }
func (h *ReleaseInventory) HandlesEvent() string { return order.EventOrderCancelled }

func (h *ReleaseInventory) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelled, ok := event.(order.CancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	if h.inventory == nil {
		h.log.Info("inventory release (no inventory service configured)",
			"order_id", cancelled.AggregateID(), "reason", cancelled.Reason)
		return nil
	}
	return h.inventory.ReleaseReservation(ctx, cancelled.AggregateID())
}

// RefundPayment starts a refund when a cancelled order was already charged.
type RefundPayment struct {
	payment PaymentService
	log     *logger.Logger
}

func NewRefundPayment(payment PaymentService, log *logger.Logger) *RefundPayment {
	if log == nil {
		log = logger.NewNop()
	}
	return &RefundPayment{payment: payment, log: log}
}

func (h *RefundPayment) HandlerName() string { return "RefundPayment" }
func (h *RefundPayment) HandlesEvent() string { return order.EventOrderCancelled }

func (h *RefundPayment) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelled, ok := event.(order.CancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	if h.payment == nil {
		h.log.Info("refund (no payment service configured)",
			"order_id", cancelled.AggregateID(), "customer_id", cancelled.CustomerID)
		return nil
	}
	return h.payment.InitiateRefund(ctx, cancelled.AggregateID(), cancelled.CustomerID)
}

// SendCancellationEmail mails the customer a cancellation notice.
type SendCancellationEmail struct {
	email EmailService
	log   *logger.Logger
}

func NewSendCancellationEmail(email EmailService, log *logger.Logger) *SendCancellationEmail {
	if log == nil {
		log = logger.NewNop()
	}
	return &SendCancellationEmail{email: email, log: log}
}

func (h *SendCancellationEmail) HandlerName() string { return "SendCancellationEmail" }
func (h *SendCancellationEmail) HandlesEvent() string { return order.EventOrderCancelled }

func (h *SendCancellationEmail) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelled, ok := event.(order.CancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	if h.email == nil {
		h.log.Info("cancellation email (no mailer configured)",
			"order_id", cancelled.AggregateID(), "customer_id", cancelled.CustomerID, "reason", cancelled.Reason)
		return nil
	}
	return h.email.SendCancellationNotice(ctx,
		cancelled.AggregateID(), cancelled.CustomerID, cancelled.Reason, cancelled.CancelledAt)
}
