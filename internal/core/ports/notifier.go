package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderView is an order with every reference resolved for rendering.
type OrderView struct {
	OrderID           kernel.UUID
	Number            order.Number
	Status            order.Status
	Customer          CustomerView
	Items             []OrderItemView
	Subtotal          kernel.Money
	Tax               kernel.Money
	Shipping          kernel.Money
	Discount          kernel.Money
	Total             kernel.Money
	ShippingAddress   kernel.AddressFields
	TrackingNumber    string
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
}

type CustomerView struct {
	Name  string
	Email string
	Phone string
}

type OrderItemView struct {
	ProductName   string
	ImageURL      string
	Quantity      int
	Price         kernel.Money
	LineTotal     kernel.Money
	Customization order.Customization
}

// OrderViewResolver joins an order with customer and product display data.
type OrderViewResolver interface {
	Resolve(ctx context.Context, o *order.Order) (OrderView, error)
}

// Notifier delivers order notifications on a best-effort basis.
// Implementations absorb every failure; nothing is returned to the caller.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, view OrderView)
	NotifyStatusChanged(ctx context.Context, view OrderView, status order.Status, note string)
}
