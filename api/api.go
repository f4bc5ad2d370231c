// Package api exposes the order use cases over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"order-events-demo/application"
	"order-events-demo/domain/customer"
	"order-events-demo/domain/order"
	"order-events-demo/domain/shared"
)

// SchemaError maps domain errors to HTTP status codes.
func SchemaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, order.ErrOrderNotModifiable),
		errors.Is(err, order.ErrOrderNotDraft),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrItemLimitExceeded),
		errors.Is(err, order.ErrCannotCancel),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrItemNotFound):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, order.ErrEmptyOrderID),
		errors.Is(err, order.ErrEmptyProductID),
		errors.Is(err, customer.ErrEmptyCustomerID),
		errors.Is(err, shared.ErrNegativeAmount),
		errors.Is(err, shared.ErrCurrencyMismatch):
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error400BadRequest(err.Error())
	}
}

// --- Request/Response Types ---

type RequestOrderCreate struct {
	Body struct {
		CustomerID string                  `json:"customer_id" doc:"Customer identifier" minLength:"1"`
		Items      []application.ItemInput `json:"items" doc:"Order items"`
	}
}

type RequestOrderGet struct {
	OrderID string `path:"orderId" doc:"Order identifier"`
}

type RequestOrderAddItem struct {
	OrderID string `path:"orderId" doc:"Order identifier"`
	Body    struct {
		Item application.ItemInput `json:"item" doc:"Item to add"`
	}
}

type RequestOrderCancel struct {
	OrderID string `path:"orderId" doc:"Order identifier"`
	Body    struct {
		Reason string `json:"reason,omitempty" doc:"Cancellation reason"`
	}
}

type RequestCustomerOrders struct {
	CustomerID string `path:"customerId" doc:"Customer identifier"`
}

type ResponseOrderCreated struct {
	Status int
	Body   struct {
		OrderID string `json:"order_id"`
	}
}

type ResponseOrder struct {
	Body *application.OrderSummary
}

type ResponseOrderList struct {
	Body struct {
		Orders []*application.OrderSummary `json:"orders"`
	}
}

// --- Resource ---

// OrderResource handles all order endpoints.
type OrderResource struct {
	svc *application.OrderService
	api huma.API
}

func NewOrderResource(svc *application.OrderService, api huma.API) *OrderResource {
	return &OrderResource{svc: svc, api: api}
}

// Register registers all order endpoints.
func (rs *OrderResource) Register() {
	huma.Register(rs.api, huma.Operation{
		OperationID:   "order-create",
		Summary:       "Create a new order",
		Description:   "Creates a draft order with the given items",
		Method:        http.MethodPost,
		Path:          "/api/orders",
		Tags:          []string{"Orders"},
		DefaultStatus: http.StatusCreated,
	}, rs.Create)

	huma.Register(rs.api, huma.Operation{
		OperationID: "order-get",
		Summary:     "Get order",
		Description: "Retrieves one order summary by id",
		Method:      http.MethodGet,
		Path:        "/api/orders/{orderId}",
		Tags:        []string{"Orders"},
	}, rs.Get)

	huma.Register(rs.api, huma.Operation{
		OperationID: "order-add-item",
		Summary:     "Add item",
		Description: "Adds an item to a draft order",
		Method:      http.MethodPost,
		Path:        "/api/orders/{orderId}/items",
		Tags:        []string{"Orders"},
	}, rs.AddItem)

	huma.Register(rs.api, huma.Operation{
		OperationID: "order-place",
		Summary:     "Place order",
		Description: "Confirms a draft order",
		Method:      http.MethodPost,
		Path:        "/api/orders/{orderId}/place",
		Tags:        []string{"Orders"},
	}, rs.Place)

	huma.Register(rs.api, huma.Operation{
		OperationID: "order-cancel",
		Summary:     "Cancel order",
		Description: "Cancels a draft or placed order",
		Method:      http.MethodPost,
		Path:        "/api/orders/{orderId}/cancel",
		Tags:        []string{"Orders"},
	}, rs.Cancel)

	huma.Register(rs.api, huma.Operation{
		OperationID: "customer-orders",
		Summary:     "List customer orders",
		Description: "Lists all orders for a customer",
		Method:      http.MethodGet,
		Path:        "/api/customers/{customerId}/orders",
		Tags:        []string{"Orders"},
	}, rs.ListByCustomer)
}

func (rs *OrderResource) Create(ctx context.Context, req *RequestOrderCreate) (*ResponseOrderCreated, error) {
	orderID, err := rs.svc.CreateOrder(ctx, application.CreateOrderCommand{
		CustomerID: req.Body.CustomerID,
		Items:      req.Body.Items,
	})
	if err != nil {
		return nil, SchemaError(err)
	}

	res := &ResponseOrderCreated{Status: http.StatusCreated}
	res.Body.OrderID = orderID
	return res, nil
}

func (rs *OrderResource) Get(ctx context.Context, req *RequestOrderGet) (*ResponseOrder, error) {
	summary, err := rs.svc.GetOrderSummary(ctx, req.OrderID)
	if err != nil {
		return nil, SchemaError(err)
	}
	return &ResponseOrder{Body: summary}, nil
}

func (rs *OrderResource) AddItem(ctx context.Context, req *RequestOrderAddItem) (*ResponseOrder, error) {
	err := rs.svc.AddItem(ctx, application.AddItemCommand{
		OrderID: req.OrderID,
		Item:    req.Body.Item,
	})
	if err != nil {
		return nil, SchemaError(err)
	}
	return rs.Get(ctx, &RequestOrderGet{OrderID: req.OrderID})
}

func (rs *OrderResource) Place(ctx context.Context, req *RequestOrderGet) (*ResponseOrder, error) {
	if err := rs.svc.PlaceOrder(ctx, application.PlaceOrderCommand{OrderID: req.OrderID}); err != nil {
		return nil, SchemaError(err)
	}
	return rs.Get(ctx, req)
}

func (rs *OrderResource) Cancel(ctx context.Context, req *RequestOrderCancel) (*ResponseOrder, error) {
	err := rs.svc.CancelOrder(ctx, application.CancelOrderCommand{
		OrderID: req.OrderID,
		Reason:  req.Body.Reason,
	})
	if err != nil {
		return nil, SchemaError(err)
	}
	return rs.Get(ctx, &RequestOrderGet{OrderID: req.OrderID})
}

func (rs *OrderResource) ListByCustomer(ctx context.Context, req *RequestCustomerOrders) (*ResponseOrderList, error) {
	summaries, err := rs.svc.ListCustomerOrders(ctx, req.CustomerID)
	if err != nil {
		return nil, SchemaError(err)
	}
	res := &ResponseOrderList{}
	res.Body.Orders = summaries
	return res, nil
}
