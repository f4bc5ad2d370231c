package main

import (
	"context"
	"fmt"
	"os"

	"order-events-demo/application"
	"order-events-demo/application/handler"
	"order-events-demo/domain/customer"
	"order-events-demo/domain/order"
	"order-events-demo/domain/pricing"
	"order-events-demo/infra/memory"
	"order-events-demo/pkg/eventbus"
	"order-events-demo/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("=== Order Domain Events Demo ===")
	ctx := context.Background()

	log, err := logger.New("dev")
	if err != nil {
		return err
	}
	defer log.Sync()

	// --- 1. Wire the event bus and its subscribers ---
	fmt.Println("\n1. Wiring event bus and handlers...")
	bus := eventbus.New(eventbus.WithLogger(log))
	bus.Subscribe(handler.NewSendOrderConfirmationEmail(nil, log))
	bus.Subscribe(handler.NewNotifyInventorySystem(nil, log))
	bus.Subscribe(handler.NewUpdateAnalytics(nil, log))
	bus.Subscribe(handler.NewReleaseInventory(nil, log))
	bus.Subscribe(handler.NewRefundPayment(nil, log))
	bus.Subscribe(handler.NewSendCancellationEmail(nil, log))

	orders := memory.NewOrderRepository(bus)
	svc := application.NewOrderService(orders, log)

	// --- 2. Create and place an order ---
	fmt.Println("\n2. Creating an order...")
	orderID, err := svc.CreateOrder(ctx, application.CreateOrderCommand{
		CustomerID: "customer-001",
		Items: []application.ItemInput{
			{ProductID: "LAPTOP", Quantity: 1, UnitPrice: 120000},
			{ProductID: "MOUSE", Quantity: 2, UnitPrice: 3000},
		},
	})
	if err != nil {
		return err
	}

	summary, err := svc.GetOrderSummary(ctx, orderID)
	if err != nil {
		return err
	}
	fmt.Printf("   -> Order %s: %d items, total %s\n", orderID, summary.ItemCount, summary.TotalFormatted)

	fmt.Println("\n3. Placing the order (handlers fan out)...")
	if err := svc.PlaceOrder(ctx, application.PlaceOrderCommand{OrderID: orderID}); err != nil {
		return err
	}

	// --- 3. Pricing for the placed order ---
	fmt.Println("\n4. Pricing...")
	email, err := customer.NewEmail("taro@example.com")
	if err != nil {
		return err
	}
	buyer, err := customer.Create("Taro Yamada", email)
	if err != nil {
		return err
	}
	if err := buyer.AddLoyaltyPoints(1500); err != nil {
		return err
	}

	oid, err := order.NewID(orderID)
	if err != nil {
		return err
	}
	placedOrder, err := orders.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	svcPricing := pricing.NewService()
	discount, err := svcPricing.CalculateDiscount(buyer, placedOrder)
	if err != nil {
		return err
	}
	final, err := svcPricing.CalculateFinalAmount(buyer, placedOrder)
	if err != nil {
		return err
	}
	fmt.Printf("   -> Discount %s, final amount %s\n", discount.Format(), final.Format())

	// --- 4. Cancel a second order ---
	fmt.Println("\n5. Cancelling another order...")
	secondID, err := svc.CreateOrder(ctx, application.CreateOrderCommand{
		CustomerID: "customer-001",
		Items:      []application.ItemInput{{ProductID: "KEYBOARD", Quantity: 1, UnitPrice: 8000}},
	})
	if err != nil {
		return err
	}
	err = svc.CancelOrder(ctx, application.CancelOrderCommand{OrderID: secondID, Reason: "changed my mind"})
	if err != nil {
		return err
	}

	// --- 5. Event history ---
	fmt.Println("\n6. Published event history:")
	for i, event := range bus.History() {
		fmt.Printf("   %2d. %-16s aggregate=%s\n", i+1, event.EventName(), event.AggregateID())
	}

	return nil
}
