package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler runs one lifecycle transition.
//
// The read, the history append and the status write are committed as a unit
// guarded by the order's version, so two concurrent requests from the same
// prior state cannot both succeed. The loser gets errs.ConcurrencyConflictError
// and no notification intent is written for it.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.StatusTransitionEngine
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewStatusTransitionEngine(),
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
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

	target := cmd.Status()
	if target == order.Unknown {
		return nil, errs.NewInvalidTransitionError(o.Status().String(), cmd.RawStatus(), "target status is not recognised")
	}

	actor := cmd.ActorID()
	event, err := h.engine.Transition(o, target, cmd.Note(), &actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.NotificationOutbox().Enqueue(ctx, ports.OutboxEntry{
		ID:        kernel.NewUUID(),
		OrderID:   event.OrderID,
		Kind:      ports.StatusChanged,
		Status:    event.To,
		Note:      event.Note,
		CreatedAt: event.At,
	}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
