// Package handler contains the event handlers that react to order domain
// events, and the narrow ports to the external services they call.
package handler

import (
	"context"
	"time"

	"order-events-demo/domain/order"
)

// EmailService sends customer-facing mail.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, orderID, customerID string, totalAmount int64, items []order.ItemSnapshot) error
	SendCancellationNotice(ctx context.Context, orderID, customerID, reason string, cancelledAt time.Time) error
}

// InventoryService manages stock reservations.
type InventoryService interface {
	ReserveStock(ctx context.Context, productID string, quantity int) error
	ReleaseReservation(ctx context.Context, orderID string) error
}

// PaymentService handles refunds.
type PaymentService interface {
	InitiateRefund(ctx context.Context, orderID, customerID string) error
}

// AnalyticsService records order metrics.
type AnalyticsService interface {
	RecordOrder(ctx context.Context, orderID, customerID string, totalAmount int64, placedAt time.Time) error
}
