package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-events-demo/domain/order"
	"order-events-demo/domain/shared"
)

type fakeEmailService struct {
	confirmations []string
	cancellations []string
	err           error
}

func (f *fakeEmailService) SendOrderConfirmation(_ context.Context, orderID, _ string, _ int64, _ []order.ItemSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, orderID)
	return nil
}

func (f *fakeEmailService) SendCancellationNotice(_ context.Context, orderID, _, _ string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.cancellations = append(f.cancellations, orderID)
	return nil
}

type fakeInventoryService struct {
	reserved []string
	released []string
	err      error
}

func (f *fakeInventoryService) ReserveStock(_ context.Context, productID string, _ int) error {
	if f.err != nil {
		return f.err
	}
	f.reserved = append(f.reserved, productID)
	return nil
}

func (f *fakeInventoryService) ReleaseReservation(_ context.Context, orderID string) error {
	if f.err != nil {
		return f.err
	}
	f.released = append(f.released, orderID)
	return nil
}

type fakePaymentService struct {
	refunded []string
}

func (f *fakePaymentService) InitiateRefund(_ context.Context, orderID, _ string) error {
	f.refunded = append(f.refunded, orderID)
	return nil
}

func givenPlacedEvent(t *testing.T) order.PlacedEvent {
	t.Helper()
	id, err := order.NewID("order-001")
	require.NoError(t, err)
	items := []order.ItemSnapshot{
		{ProductID: "LAPTOP-001", Quantity: 1, UnitPrice: 120000, Subtotal: 120000},
		{ProductID: "MOUSE-001", Quantity: 2, UnitPrice: 3000, Subtotal: 6000},
	}
	return order.NewPlacedEvent(id, "customer-001", shared.MustYen(126000), items, time.Now())
}

func givenCancelledEvent(t *testing.T) order.CancelledEvent {
	t.Helper()
	id, err := order.NewID("order-001")
	require.NoError(t, err)
	return order.NewCancelledEvent(id, "customer-001", "changed my mind", time.Now())
}

func TestSendOrderConfirmationEmail(t *testing.T) {
	email := &fakeEmailService{}
	h := NewSendOrderConfirmationEmail(email, nil)

	assert.Equal(t, order.EventOrderPlaced, h.HandlesEvent())
	require.NoError(t, h.Handle(context.Background(), givenPlacedEvent(t)))
	assert.Equal(t, []string{"order-001"}, email.confirmations)
}

func TestSendOrderConfirmationEmailWithoutMailer(t *testing.T) {
	h := NewSendOrderConfirmationEmail(nil, nil)
	assert.NoError(t, h.Handle(context.Background(), givenPlacedEvent(t)))
}

func TestSendOrderConfirmationEmailRejectsWrongEvent(t *testing.T) {
	h := NewSendOrderConfirmationEmail(&fakeEmailService{}, nil)
	assert.Error(t, h.Handle(context.Background(), givenCancelledEvent(t)))
}

func TestNotifyInventorySystem(t *testing.T) {
	inventory := &fakeInventoryService{}
	h := NewNotifyInventorySystem(inventory, nil)

	require.NoError(t, h.Handle(context.Background(), givenPlacedEvent(t)))
	assert.Equal(t, []string{"LAPTOP-001", "MOUSE-001"}, inventory.reserved)
}

func TestNotifyInventorySystemPropagatesFailure(t *testing.T) {
	inventory := &fakeInventoryService{err: errors.New("out of stock")}
	h := NewNotifyInventorySystem(inventory, nil)

	assert.Error(t, h.Handle(context.Background(), givenPlacedEvent(t)))
}

func TestReleaseInventory(t *testing.T) {
	inventory := &fakeInventoryService{}
	h := NewReleaseInventory(inventory, nil)

	assert.Equal(t, order.EventOrderCancelled, h.HandlesEvent())
	require.NoError(t, h.Handle(context.Background(), givenCancelledEvent(t)))
	assert.Equal(t, []string{"order-001"}, inventory.released)
}

func TestRefundPayment(t *testing.T) {
	payment := &fakePaymentService{}
	h := NewRefundPayment(payment, nil)

	require.NoError(t, h.Handle(context.Background(), givenCancelledEvent(t)))
	assert.Equal(t, []string{"order-001"}, payment.refunded)
}

func TestSendCancellationEmail(t *testing.T) {
	email := &fakeEmailService{}
	h := NewSendCancellationEmail(email, nil)

	require.NoError(t, h.Handle(context.Background(), givenCancelledEvent(t)))
	assert.Equal(t, []string{"order-001"}, email.cancellations)
}

func TestSendCancellationEmailRejectsWrongEvent(t *testing.T) {
	h := NewSendCancellationEmail(&fakeEmailService{}, nil)
	assert.Error(t, h.Handle(context.Background(), givenPlacedEvent(t)))
}
