package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Repositories obtained after Begin
// share its transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	NotificationOutbox() NotificationOutbox
	OrderNumberSequence() OrderNumberSequence
}
