package commands

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateShippingDetailsCommandIsNotConstructed = errors.New(
	"UpdateShippingDetailsCommand must be created via NewUpdateShippingDetailsCommand constructor",
)

// UpdateShippingDetailsCommand is an administrative correction of tracking,
// estimated delivery or shipping address. At least one must be present.
type UpdateShippingDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details order.ShippingDetails

	guard guard.ConstructorGuard
}

func NewUpdateShippingDetailsCommand(
	orderID kernel.UUID,
	trackingNumber *string,
	estimatedDelivery *time.Time,
	shippingAddress *kernel.Address,
) (UpdateShippingDetailsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateShippingDetailsCommand{}, err
	}
	if trackingNumber == nil && estimatedDelivery == nil && shippingAddress == nil {
		return UpdateShippingDetailsCommand{}, errs.NewValueIsRequiredError("shipping details")
	}

	return UpdateShippingDetailsCommand{
		orderID: orderID,
		details: order.ShippingDetails{
			TrackingNumber:    trackingNumber,
			EstimatedDelivery: estimatedDelivery,
			ShippingAddress:   shippingAddress,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShippingDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShippingDetailsCommandIsNotConstructed)
}

func (c UpdateShippingDetailsCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateShippingDetailsCommand) Details() order.ShippingDetails { return c.details }
