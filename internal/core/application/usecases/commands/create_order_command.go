package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem is one submitted cart line.
type CreateOrderItem struct {
	ProductID     kernel.UUID
	Quantity      int
	Price         kernel.Money
	Customization order.Customization
}

// CreateOrderCommand is a checkout request.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, items, shipping, nil, &claimedSubtotal)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	items           []order.LineItem
	shippingAddress kernel.Address
	billingAddress  *kernel.Address
	claimedSubtotal *kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the submission. billing and claimedSubtotal are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []CreateOrderItem,
	shipping kernel.Address,
	billing *kernel.Address,
	claimedSubtotal *kernel.Money,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		billingAddress:  billing,
		claimedSubtotal: claimedSubtotal,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setShippingAddress(shipping),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateOrderCommand) ShippingAddress() kernel.Address { return c.shippingAddress }
func (c CreateOrderCommand) BillingAddress() *kernel.Address { return c.billingAddress }
func (c CreateOrderCommand) ClaimedSubtotal() *kernel.Money { return c.claimedSubtotal }

func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// ProductIDs lists the distinct products in the order.
func (c CreateOrderCommand) ProductIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.items))
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.ProductID()]; ok {
			continue
		}
		seen[item.ProductID()] = struct{}{}
		ids = append(ids, item.ProductID())
	}
	return ids
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}

	lines := make([]order.LineItem, 0, len(items))
	var itemErrs []error
	for i, in := range items {
		line, err := order.NewLineItem(in.ProductID, in.Quantity, in.Price, in.Customization)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		lines = append(lines, line)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = lines
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipping address", err)
	}
	c.shippingAddress = a
	return nil
}
