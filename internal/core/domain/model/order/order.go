package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned by Validate for an Order built
	// outside NewOrder and RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a customer's purchase.
//
// Order holds these invariants at every observation point:
//   - items is non-empty, every quantity is at least 1 and every price non-negative
//   - history is non-empty and starts with Pending
//   - the last history entry always carries the current status
//   - pricing.Total() equals subtotal + tax + shipping - discount
//
// Status only changes through ChangeStatus, which appends to history.
// Shipping details may be corrected through UpdateShippingDetails; items and
// pricing never change after creation.
type Order struct {
	id                kernel.UUID
	number            Number
	customerID        kernel.UUID
	items             []LineItem
	shippingAddress   kernel.Address
	billingAddress    kernel.Address
	pricing           Pricing
	status            Status
	history           []StatusChange
	trackingNumber    string
	estimatedDelivery *time.Time
	createdAt         time.Time
	updatedAt         time.Time

	// version is the optimistic concurrency token read from storage.
	version int64

	isConstructed bool
}

// NewOrderParams carries everything needed to place an order.
type NewOrderParams struct {
	ID              kernel.UUID
	Number          Number
	CustomerID      kernel.UUID
	Items           []LineItem
	ShippingAddress kernel.Address
	// BillingAddress defaults to a copy of ShippingAddress when nil.
	BillingAddress *kernel.Address
	Policy         PricingPolicy
	// Discount is optional; nil means no discount.
	Discount *kernel.Money
	// ClaimedSubtotal is the subtotal the client computed, if it sent one.
	ClaimedSubtotal *kernel.Money
	At              time.Time
}

// NewOrder validates the input, prices the items with the policy and returns
// a Pending order whose history holds a single entry.
//
// All independent validation failures are returned together. A claimed
// subtotal that differs from the item sum by more than SubtotalTolerance is
// rejected.
//
// Example:
//
//	o, err := order.NewOrder(order.NewOrderParams{
//	    ID:              kernel.NewUUID(),
//	    Number:          number,
//	    CustomerID:      customerID,
//	    Items:           items,
//	    ShippingAddress: address,
//	    Policy:          order.DefaultPricingPolicy(),
//	    At:              time.Now(),
//	})
func NewOrder(p NewOrderParams) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setCustomerID(p.CustomerID),
		o.setItems(p.Items),
		o.setAddresses(p.ShippingAddress, p.BillingAddress),
		requireTime("created at", p.At),
	); err != nil {
		return nil, err
	}

	subtotal := Subtotal(o.items)
	if p.ClaimedSubtotal != nil {
		verified, err := VerifyClaimedSubtotal(o.items, *p.ClaimedSubtotal)
		if err != nil {
			return nil, err
		}
		subtotal = verified
	}

	discount := kernel.ZeroMoney()
	if p.Discount != nil {
		discount = *p.Discount
	}

	pricing, err := p.Policy.Quote(subtotal, discount)
	if err != nil {
		return nil, err
	}
	o.pricing = pricing

	at := p.At.UTC()
	o.createdAt = at
	o.updatedAt = at
	customer := p.CustomerID
	o.history = []StatusChange{newStatusChange(Pending, at, "", &customer)}

	return o, nil
}

// RestoreParams is the persisted shape of an Order.
type RestoreParams struct {
	ID                kernel.UUID
	Number            Number
	CustomerID        kernel.UUID
	Items             []LineItem
	ShippingAddress   kernel.Address
	BillingAddress    kernel.Address
	Pricing           Pricing
	Status            Status
	History           []StatusChange
	TrackingNumber    string
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int64
}

// RestoreOrder rebuilds an Order loaded from storage and re-checks every invariant.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		pricing:        p.Pricing,
		trackingNumber: strings.TrimSpace(p.TrackingNumber),
		createdAt:      p.CreatedAt.UTC(),
		updatedAt:      p.UpdatedAt.UTC(),
		version:        p.Version,
		isConstructed:  true,
	}
	if p.EstimatedDelivery != nil {
		eta := p.EstimatedDelivery.UTC()
		o.estimatedDelivery = &eta
	}

	billing := p.BillingAddress
	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setCustomerID(p.CustomerID),
		o.setItems(p.Items),
		o.setAddresses(p.ShippingAddress, &billing),
		o.setHistory(p.Status, p.History),
	); err != nil {
		return nil, err
	}

	if !o.pricing.IsConsistent() {
		return nil, errs.NewValueIsInvalidErrorWithCause("pricing", errors.New("total does not match its components"))
	}

	return o, nil
}

// Validate reports ErrOrderIsNotConstructed for an Order that skipped its constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() Number { return o.number }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) BillingAddress() kernel.Address { return o.billingAddress }
func (o *Order) Pricing() Pricing { return o.pricing }
func (o *Order) Status() Status { return o.status }
func (o *Order) TrackingNumber() string { return o.trackingNumber }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version is the concurrency token matching the last stored state.
func (o *Order) Version() int64 { return o.version }

// AdvanceVersion is called by storage after a versioned write succeeded.
func (o *Order) AdvanceVersion() { o.version++ }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// History returns a copy of the audit trail, oldest first.
func (o *Order) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// LastChange returns the newest history entry.
func (o *Order) LastChange() StatusChange {
	return o.history[len(o.history)-1]
}

func (o *Order) EstimatedDelivery() *time.Time {
	if o.estimatedDelivery == nil {
		return nil
	}
	eta := *o.estimatedDelivery
	return &eta
}

// IsOwnedBy reports whether customerID placed the order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// ChangeStatus moves the order to target and appends a history entry.
//
// It fails with an InvalidTransitionError, leaving the order untouched, when
// the current status is terminal, target is not a known status or target
// equals the current status.
func (o *Order) ChangeStatus(target Status, note string, actor *kernel.UUID, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := requireTime("changed at", at); err != nil {
		return err
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.history = append(o.history, newStatusChange(next, at, note, actor))
	o.status = next
	o.touch(at)
	return nil
}

// ShippingDetails is an administrative correction. Nil fields are left as they are.
type ShippingDetails struct {
	TrackingNumber    *string
	EstimatedDelivery *time.Time
	ShippingAddress   *kernel.Address
}

// UpdateShippingDetails applies a correction without touching items, pricing or status.
//
// A tracking number may only be set once the order is ReadyToShip, Shipped
// or Delivered. The shipping address may only be replaced before the order
// ships and while it is not terminal.
func (o *Order) UpdateShippingDetails(d ShippingDetails, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := requireTime("updated at", at); err != nil {
		return err
	}

	if d.TrackingNumber != nil {
		if o.status != ReadyToShip && o.status != Shipped && o.status != Delivered {
			return errs.NewValueIsInvalidErrorWithCause("tracking number",
				fmt.Errorf("cannot be set while order is %s", o.status))
		}
		if strings.TrimSpace(*d.TrackingNumber) == "" {
			return errs.NewValueIsRequiredError("tracking number")
		}
	}

	if d.ShippingAddress != nil {
		if o.status.IsTerminal() || o.status == Shipped {
			return errs.NewValueIsInvalidErrorWithCause("shipping address",
				fmt.Errorf("cannot be changed while order is %s", o.status))
		}
		if err := d.ShippingAddress.Validate(); err != nil {
			return err
		}
	}

	if d.TrackingNumber != nil {
		o.trackingNumber = strings.TrimSpace(*d.TrackingNumber)
	}
	if d.EstimatedDelivery != nil {
		eta := d.EstimatedDelivery.UTC()
		o.estimatedDelivery = &eta
	}
	if d.ShippingAddress != nil {
		o.shippingAddress = *d.ShippingAddress
	}
	o.touch(at)
	return nil
}

func (o *Order) touch(at time.Time) {
	at = at.UTC()
	if at.After(o.updatedAt) {
		o.updatedAt = at
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(n Number) error {
	if err := n.Validate(); err != nil {
		return err
	}
	o.number = n
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}

	var itemErrs []error
	for i, item := range items {
		if err := item.Validate(); err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddresses(shipping kernel.Address, billing *kernel.Address) error {
	if err := shipping.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipping address", err)
	}
	o.shippingAddress = shipping
	o.billingAddress = shipping

	if billing != nil {
		if err := billing.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("billing address", err)
		}
		o.billingAddress = *billing
	}
	return nil
}

func (o *Order) setHistory(status Status, history []StatusChange) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("status history")
	}
	if history[0].Status() != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status history",
			fmt.Errorf("first entry is %s, expected %s", history[0].Status(), Pending))
	}
	if last := history[len(history)-1].Status(); last != status {
		return errs.NewValueIsInvalidErrorWithCause("status history",
			fmt.Errorf("last entry is %s but order is %s", last, status))
	}

	o.status = status
	o.history = make([]StatusChange, len(history))
	copy(o.history, history)
	return nil
}

func requireTime(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
