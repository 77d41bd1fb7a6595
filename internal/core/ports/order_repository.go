// Package ports declares the contracts between the order core and its
// infrastructure: persistence, number allocation, the notification outbox,
// read-only collaborators (catalog, accounts) and outbound notification.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates.
type OrderRepository interface {
	// Add stores a new order with its items and first history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status, history and shipping details of an existing order.
	// It fails with errs.ConcurrencyConflictError when the stored version no
	// longer matches aggregate.Version().
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// OrderNumberSequence hands out strictly increasing values shared by every
// instance of the service.
type OrderNumberSequence interface {
	Next(ctx context.Context) (int64, error)
}
