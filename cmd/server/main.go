package main

import (
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"order-events-demo/api"
	"order-events-demo/application"
	"order-events-demo/application/handler"
	"order-events-demo/domain/order"
	"order-events-demo/infra/memory"
	"order-events-demo/infra/postgres"
	"order-events-demo/infra/sqlite"
	"order-events-demo/pkg/config"
	"order-events-demo/pkg/eventbus"
	"order-events-demo/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	bus := eventbus.New(eventbus.WithLogger(log))
	subscribeHandlers(bus, log)

	orders, err := newOrderRepository(cfg.Storage, bus)
	if err != nil {
		log.Fatal("storage init failed", "driver", cfg.Storage.Driver, "error", err)
	}

	svc := application.NewOrderService(orders, log)

	router := chi.NewRouter()
	humaAPI := humachi.New(router, huma.DefaultConfig("Order API", "1.0.0"))
	api.NewOrderResource(svc, humaAPI).Register()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server listening",
		"addr", addr, "storage", cfg.Storage.Driver,
		"placed_handlers", bus.HandlerCount(order.EventOrderPlaced),
		"cancelled_handlers", bus.HandlerCount(order.EventOrderCancelled))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

// subscribeHandlers wires the default reaction set. External services are
// not configured here, so the handlers log what they would do.
func subscribeHandlers(bus *eventbus.Bus, log *logger.Logger) {
	bus.Subscribe(handler.NewSendOrderConfirmationEmail(nil, log))
	bus.Subscribe(handler.NewNotifyInventorySystem(nil, log))
	bus.Subscribe(handler.NewUpdateAnalytics(nil, log))
	bus.Subscribe(handler.NewReleaseInventory(nil, log))
	bus.Subscribe(handler.NewRefundPayment(nil, log))
	bus.Subscribe(handler.NewSendCancellationEmail(nil, log))
}

func newOrderRepository(cfg config.StorageConfig, bus *eventbus.Bus) (order.Repository, error) {
	switch cfg.Driver {
	case "memory":
		return memory.NewOrderRepository(bus), nil
	case "sqlite":
		db, err := sql.Open(sqlite.DriverName, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return sqlite.NewOrderRepository(db, bus)
	case "postgres":
		db, err := sql.Open(postgres.DriverName, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewOrderRepository(db, bus)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
