package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move an order to a new status.
// The requested status code is kept verbatim; an unrecognised code is
// rejected by the handler as an invalid transition, not as malformed input.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	rawStatus string
	note      string
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderID kernel.UUID, status, note string, actorID kernel.UUID) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		rawStatus: strings.TrimSpace(status),
		note:      strings.TrimSpace(note),
		guard:     guard.NewConstructorGuard(),
	}

	var statusErr error
	if cmd.rawStatus == "" {
		statusErr = errs.NewValueIsRequiredError("status")
	}

	if err := errors.Join(cmd.setOrderID(orderID), statusErr, cmd.setActorID(actorID)); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) RawStatus() string { return c.rawStatus }
func (c ChangeOrderStatusCommand) Status() order.Status { return order.ParseStatus(c.rawStatus) }
func (c ChangeOrderStatusCommand) Note() string { return c.note }
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID { return c.actorID }

func (c *ChangeOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	c.actorID = id
	return nil
}
