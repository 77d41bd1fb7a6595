// Package notification delivers order notifications to external channels.
//
// The Gateway renders a message for each audience and sends it to every
// registered route concurrently. A route that fails, panics or exceeds the
// per-channel timeout is logged and counted; nothing is returned to the caller.
package notification

import (
	"context"
	"fmt"
	"slices"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

type Audience string

const (
	AudienceCustomer  Audience = "customer"
	AudienceAdmin     Audience = "admin"
	AudienceBroadcast Audience = "broadcast"
)

type Recipient struct {
	Name  string
	Email string
	Phone string
}

// Message is the rendered content handed to a Channel.
type Message struct {
	Kind        ports.NotificationKind
	OrderID     kernel.UUID
	OrderNumber string
	Status      order.Status
	Note        string
	Total       kernel.Money
	Subject     string
	Text        string
	HTML        string
	CreatedAt   time.Time
}

// Channel is one outbound transport such as SMTP, a messaging webhook or a
// message broker. Send must honour ctx cancellation.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message, to Recipient) error
}

// Route binds a channel to an audience. Empty Kinds means every kind.
type Route struct {
	Channel  Channel
	Audience Audience
	Kinds    []ports.NotificationKind
}

func (r Route) accepts(kind ports.NotificationKind) bool {
	return len(r.Kinds) == 0 || slices.Contains(r.Kinds, kind)
}

// DispatchError is a failed channel attempt. It is logged and never returned
// past the Gateway.
type DispatchError struct {
	Channel     string
	Kind        ports.NotificationKind
	OrderNumber string
	Err         error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("notification %s for order %s via %s failed: %v", e.Kind, e.OrderNumber, e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
