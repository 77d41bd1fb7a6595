// Package http exposes the order use cases over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	UpdateShippingDetailsHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateShippingDetailsCommand) (*order.Order, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
	}
)

// Handlers groups the use cases served by Server.
type Handlers struct {
	CreateOrder           CreateOrderHandler
	ChangeOrderStatus     ChangeOrderStatusHandler
	UpdateShippingDetails UpdateShippingDetailsHandler
	GetOrder              GetOrderHandler
	ListOrders            ListOrdersHandler
}

// Server maps HTTP requests onto commands and queries.
type Server struct {
	handlers Handlers
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewServer(handlers Handlers, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		metrics:  m,
		logger:   logger.With("component", "http-server"),
	}
}

// Register mounts the order API on e.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1/orders", Authenticate())
	admin := RequireAdmin()

	api.POST("", s.CreateOrder)
	api.GET("/mine", s.ListMyOrders)
	api.GET("", s.ListOrders, admin)
	api.GET("/:id", s.GetOrder)
	api.PATCH("/:id/status", s.ChangeOrderStatus, admin)
	api.PATCH("/:id/shipping", s.UpdateShippingDetails, admin)
}

// CreateOrder handles POST /api/v1/orders - places an order for the caller.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := s.createOrderCommand(identityFrom(c).UserID, req)
	if err != nil {
		return badRequest(c, "Invalid order data: "+err.Error())
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to create order")
	}

	s.metrics.OrderCreated()
	return c.JSON(http.StatusCreated, orderFromAggregate(created))
}

func (s *Server) createOrderCommand(customerID kernel.UUID, req NewOrder) (commands.CreateOrderCommand, error) {
	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		price, err := kernel.NewMoney(item.Price)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, commands.CreateOrderItem{
			ProductID:     productID,
			Quantity:      item.Quantity,
			Price:         price,
			Customization: item.Customization.toDomain(),
		})
	}

	shipping, err := req.ShippingAddress.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var billing *kernel.Address
	if req.BillingAddress != nil {
		b, billingErr := req.BillingAddress.toDomain()
		if billingErr != nil {
			return commands.CreateOrderCommand{}, billingErr
		}
		billing = &b
	}

	var claimed *kernel.Money
	if req.Subtotal != nil {
		m, claimedErr := kernel.NewMoney(*req.Subtotal)
		if claimedErr != nil {
			return commands.CreateOrderCommand{}, claimedErr
		}
		claimed = &m
	}

	return commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, items, shipping, billing, claimed)
}

// ListMyOrders handles GET /api/v1/orders/mine - the caller's own orders.
func (s *Server) ListMyOrders(c echo.Context) error {
	customerID := identityFrom(c).UserID
	return s.listOrders(c, &customerID)
}

// ListOrders handles GET /api/v1/orders - every order, admin only.
func (s *Server) ListOrders(c echo.Context) error {
	var customerID *kernel.UUID
	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(c, "Invalid customer_id")
		}
		customerID = &id
	}
	return s.listOrders(c, customerID)
}

func (s *Server) listOrders(c echo.Context, customerID *kernel.UUID) error {
	page, err := intParam(c, "page")
	if err != nil {
		return badRequest(c, "Invalid page")
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return badRequest(c, "Invalid limit")
	}

	query, err := queries.NewListOrdersQuery(queries.ListOrdersParams{
		CustomerID: customerID,
		Status:     c.QueryParam("status"),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return badRequest(c, "Invalid filter: "+err.Error())
	}

	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve orders")
	}
	return c.JSON(http.StatusOK, orderListFromPage(result))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	caller := identityFrom(c)
	query, err := queries.NewGetOrderQuery(orderID, caller.UserID, caller.IsAdmin())
	if err != nil {
		return badRequest(c, "Invalid order query: "+err.Error())
	}

	details, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve order")
	}
	return c.JSON(http.StatusOK, orderFromDetails(details))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req StatusUpdate
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status, req.Note, identityFrom(c).UserID)
	if err != nil {
		return badRequest(c, "Invalid status update: "+err.Error())
	}

	updated, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to update order status")
	}

	s.metrics.StatusChanged(updated.Status().String())
	return c.JSON(http.StatusOK, orderFromAggregate(updated))
}

// UpdateShippingDetails handles PATCH /api/v1/orders/:id/shipping.
func (s *Server) UpdateShippingDetails(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req ShippingUpdate
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var address *kernel.Address
	if req.ShippingAddress != nil {
		a, addressErr := req.ShippingAddress.toDomain()
		if addressErr != nil {
			return badRequest(c, "Invalid shipping address: "+addressErr.Error())
		}
		address = &a
	}

	cmd, err := commands.NewUpdateShippingDetailsCommand(orderID, req.TrackingNumber, req.EstimatedDelivery, address)
	if err != nil {
		return badRequest(c, "Invalid shipping update: "+err.Error())
	}

	updated, err := s.handlers.UpdateShippingDetails.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to update shipping details")
	}
	return c.JSON(http.StatusOK, orderFromAggregate(updated))
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
