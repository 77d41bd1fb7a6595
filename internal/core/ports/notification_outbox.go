package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// NotificationKind tells the gateway which message to render.
type NotificationKind string

const (
	OrderCreated  NotificationKind = "order_created"
	StatusChanged NotificationKind = "status_changed"
)

// OutboxEntry is a notification intent written in the same transaction as the
// order change that caused it.
type OutboxEntry struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Kind      NotificationKind
	Status    order.Status
	Note      string
	CreatedAt time.Time
}

// NotificationOutbox stores notification intents until the dispatcher picks them up.
type NotificationOutbox interface {
	Enqueue(ctx context.Context, entry OutboxEntry) error

	// ClaimPending locks up to limit undispatched entries, oldest first.
	// Entries locked by another transaction are skipped.
	ClaimPending(ctx context.Context, limit int) ([]OutboxEntry, error)

	MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
