package services

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// StatusChanged describes a committed lifecycle step. It is the intent the
// notification gateway consumes.
type StatusChanged struct {
	OrderID kernel.UUID
	Number  order.Number
	From    order.Status
	To      order.Status
	Note    string
	Actor   *kernel.UUID
	At      time.Time
}

// StatusTransitionEngine validates and applies status changes.
//
// Example:
//
//	engine := services.NewStatusTransitionEngine()
//	event, err := engine.Transition(o, order.Confirmed, "payment received", &adminID, time.Now())
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // order is unchanged
//	}
type StatusTransitionEngine struct{}

func NewStatusTransitionEngine() StatusTransitionEngine {
	return StatusTransitionEngine{}
}

// Transition moves o to target and returns the event to publish.
// On error the order is left exactly as it was.
func (StatusTransitionEngine) Transition(
	o *order.Order,
	target order.Status,
	note string,
	actor *kernel.UUID,
	at time.Time,
) (StatusChanged, error) {
	if err := o.Validate(); err != nil {
		return StatusChanged{}, err
	}

	from := o.Status()
	if err := o.ChangeStatus(target, note, actor, at); err != nil {
		return StatusChanged{}, err
	}

	last := o.LastChange()
	return StatusChanged{
		OrderID: o.ID(),
		Number:  o.Number(),
		From:    from,
		To:      last.Status(),
		Note:    last.Note(),
		Actor:   last.UpdatedBy(),
		At:      last.At(),
	}, nil
}
