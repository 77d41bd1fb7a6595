package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// UpdateShippingDetailsCommandHandler applies shipping corrections under the
// same version check as status changes. It does not notify the customer.
type UpdateShippingDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateShippingDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateShippingDetailsCommandHandler {
	return UpdateShippingDetailsCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateShippingDetailsCommandHandler) Handle(ctx context.Context, cmd UpdateShippingDetailsCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.UpdateShippingDetails(cmd.Details(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
