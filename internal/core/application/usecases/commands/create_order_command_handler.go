package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// CreateOrderCommandHandler places orders.
//
// Prices are checked against the catalog before any write. The order, its
// number and an order-created notification intent are committed together;
// nothing is persisted when validation fails.
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	catalog      ports.CatalogService
	priceCheck   services.CatalogPriceCheck
	policy       order.PricingPolicy
	numberPrefix string
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogService,
	policy order.PricingPolicy,
	numberPrefix string,
) CreateOrderCommandHandler {
	if numberPrefix == "" {
		numberPrefix = order.DefaultNumberPrefix
	}
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		catalog:      catalog,
		priceCheck:   services.NewCatalogPriceCheck(),
		policy:       policy,
		numberPrefix: numberPrefix,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	products, err := h.catalog.Products(ctx, cmd.ProductIDs())
	if err != nil {
		return nil, err
	}

	prices := make(map[kernel.UUID]kernel.Money, len(products))
	for id, p := range products {
		prices[id] = p.Price
	}
	if err = h.priceCheck.Check(cmd.Items(), prices); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	seq, err := uow.OrderNumberSequence().Next(ctx)
	if err != nil {
		return nil, err
	}

	number, err := order.NewNumber(h.numberPrefix, seq)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := order.NewOrder(order.NewOrderParams{
		ID:              cmd.OrderID(),
		Number:          number,
		CustomerID:      cmd.CustomerID(),
		Items:           cmd.Items(),
		ShippingAddress: cmd.ShippingAddress(),
		BillingAddress:  cmd.BillingAddress(),
		Policy:          h.policy,
		ClaimedSubtotal: cmd.ClaimedSubtotal(),
		At:              now,
	})
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.NotificationOutbox().Enqueue(ctx, ports.OutboxEntry{
		ID:        kernel.NewUUID(),
		OrderID:   created.ID(),
		Kind:      ports.OrderCreated,
		Status:    created.Status(),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
