package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const MaxDispatchBatchSize = 500

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand drains up to BatchSize pending notification intents.
type DispatchNotificationsCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(batchSize int) (DispatchNotificationsCommand, error) {
	if batchSize < 1 || batchSize > MaxDispatchBatchSize {
		return DispatchNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, MaxDispatchBatchSize)
	}
	return DispatchNotificationsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}
