package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"order-events-demo/domain/customer"
	"order-events-demo/domain/shared"
)

// Well-known test data, reused across the order tests.
const (
	testOrderID    = ID("order-000")
	testCustomerID = customer.ID("customer-000")
)

func yen(t *testing.T, amount int64) shared.Money {
	t.Helper()
	m, err := shared.FromYen(amount)
	require.NoError(t, err)
	return m
}

// GivenNewOrder returns an empty draft order with a clean event buffer.
func GivenNewOrder(t *testing.T) *Order {
	t.Helper()
	o := NewOrder(testOrderID, testCustomerID)
	o.ClearDomainEvents()
	return o
}

// GivenDraftOrder returns a draft order holding one item.
func GivenDraftOrder(t *testing.T) *Order {
	t.Helper()
	o := GivenNewOrder(t)
	require.NoError(t, o.AddItem("SKU-001", 1, yen(t, 1000)))
	o.ClearDomainEvents()
	return o
}

// GivenPlacedOrder returns an order in PLACED status.
func GivenPlacedOrder(t *testing.T) *Order {
	t.Helper()
	o := GivenDraftOrder(t)
	require.NoError(t, o.Place())
	o.ClearDomainEvents()
	return o
}

// GivenPaidOrder returns an order in PAID status.
func GivenPaidOrder(t *testing.T) *Order {
	t.Helper()
	o := GivenPlacedOrder(t)
	require.NoError(t, o.MarkAsPaid())
	o.ClearDomainEvents()
	return o
}

// GivenShippedOrder returns an order in SHIPPED status.
func GivenShippedOrder(t *testing.T) *Order {
	t.Helper()
	o := GivenPaidOrder(t)
	require.NoError(t, o.Ship("TRACK-123"))
	o.ClearDomainEvents()
	return o
}

// GivenDeliveredOrder returns an order in DELIVERED status.
func GivenDeliveredOrder(t *testing.T) *Order {
	t.Helper()
	o := GivenShippedOrder(t)
	require.NoError(t, o.Deliver())
	o.ClearDomainEvents()
	return o
}

// GivenCancelledOrder returns an order in CANCELLED status.
func GivenCancelledOrder(t *testing.T) *Order {
	t.Helper()
	o := GivenDraftOrder(t)
	require.NoError(t, o.Cancel("test"))
	o.ClearDomainEvents()
	return o
}
