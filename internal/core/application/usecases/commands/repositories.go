// Package commands contains the write use cases of the order service.
// Every handler validates its command, runs inside a unit of work and
// writes notification intents to the outbox in the same transaction.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	SequenceFactory interface {
		OrderNumberSequence() ports.OrderNumberSequence
	}

	// OrderUoW covers commands that write orders and their notification intents.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   outbox := uow.NotificationOutbox()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxFactory
		SequenceFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
