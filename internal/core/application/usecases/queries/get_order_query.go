// Package queries contains the read use cases of the order service. Handlers
// read the tables directly and never load aggregates.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order for a viewer. Customers only see their own
// orders; anything else is reported as not found.
type GetOrderQuery struct {
	orderID  kernel.UUID
	viewerID kernel.UUID
	isAdmin  bool

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, viewerID kernel.UUID, isAdmin bool) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), viewerID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID:  orderID,
		viewerID: viewerID,
		isAdmin:  isAdmin,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderQuery) ViewerID() kernel.UUID { return q.viewerID }
func (q GetOrderQuery) IsAdmin() bool { return q.isAdmin }

type OrderItemResponse struct {
	ProductID     kernel.UUID
	Quantity      int
	Price         kernel.Money
	LineTotal     kernel.Money
	Customization order.Customization
}

type StatusChangeResponse struct {
	Status    order.Status
	Note      string
	UpdatedBy *kernel.UUID
	At        time.Time
}

type GetOrderQueryResponse struct {
	ID                kernel.UUID
	Number            string
	CustomerID        kernel.UUID
	Status            order.Status
	Items             []OrderItemResponse
	ShippingAddress   kernel.AddressFields
	BillingAddress    kernel.AddressFields
	Subtotal          kernel.Money
	Tax               kernel.Money
	Shipping          kernel.Money
	Discount          kernel.Money
	Total             kernel.Money
	TrackingNumber    string
	EstimatedDelivery *time.Time
	History           []StatusChangeResponse
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
