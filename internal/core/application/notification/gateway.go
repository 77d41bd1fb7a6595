package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

const DefaultTimeout = 5 * time.Second

var ErrChannelTimeout = errors.New("channel did not respond in time")

type Options struct {
	// Timeout bounds every channel attempt. Zero means DefaultTimeout.
	Timeout time.Duration
	// Admin receives AudienceAdmin routes.
	Admin   Recipient
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Gateway implements ports.Notifier.
type Gateway struct {
	routes  []Route
	timeout time.Duration
	admin   Recipient
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.Notifier = (*Gateway)(nil)

func NewGateway(routes []Route, opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		routes:  routes,
		timeout: timeout,
		admin:   opts.Admin,
		metrics: opts.Metrics,
		logger:  logger.With("component", "notification-gateway"),
		now:     time.Now,
	}
}

func (g *Gateway) NotifyOrderCreated(ctx context.Context, view ports.OrderView) {
	g.dispatch(ctx, ports.OrderCreated, view, view.Status, "")
}

func (g *Gateway) NotifyStatusChanged(ctx context.Context, view ports.OrderView, status order.Status, note string) {
	g.dispatch(ctx, ports.StatusChanged, view, status, note)
}

// dispatch returns once every matching route has finished or timed out.
func (g *Gateway) dispatch(ctx context.Context, kind ports.NotificationKind, view ports.OrderView, status order.Status, note string) {
	rendered := make(map[Audience]Message)
	createdAt := g.now().UTC()

	var wg sync.WaitGroup
	for _, route := range g.routes {
		if !route.accepts(kind) {
			continue
		}

		msg, ok := rendered[route.Audience]
		if !ok {
			var err error
			msg, err = render(kind, route.Audience, view, status, note)
			if err != nil {
				g.fail(ctx, &DispatchError{
					Channel: route.Channel.Name(), Kind: kind, OrderNumber: view.Number.String(), Err: err,
				})
				continue
			}
			msg.CreatedAt = createdAt
			rendered[route.Audience] = msg
		}

		wg.Add(1)
		go func(route Route, msg Message) {
			defer wg.Done()
			g.send(ctx, route, msg, g.recipient(route.Audience, view))
		}(route, msg)
	}
	wg.Wait()
}

func (g *Gateway) send(ctx context.Context, route Route, msg Message, to Recipient) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	name := route.Channel.Name()
	start := time.Now()
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("channel panicked: %v", r)
			}
		}()
		done <- route.Channel.Send(ctx, msg, to)
	}()

	var err error
	outcome := "sent"
	select {
	case err = <-done:
		if err != nil {
			outcome = "failed"
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = ErrChannelTimeout
			outcome = "timeout"
		} else {
			err = ctx.Err()
			outcome = "cancelled"
		}
	}

	g.metrics.NotificationSent(name, string(msg.Kind), outcome, time.Since(start))

	if err != nil {
		g.fail(ctx, &DispatchError{Channel: name, Kind: msg.Kind, OrderNumber: msg.OrderNumber, Err: err})
		return
	}
	g.logger.InfoContext(ctx, "notification sent",
		"channel", name, "kind", string(msg.Kind), "order_number", msg.OrderNumber)
}

func (g *Gateway) fail(ctx context.Context, err *DispatchError) {
	g.logger.ErrorContext(ctx, "notification failed",
		"channel", err.Channel, "kind", string(err.Kind), "order_number", err.OrderNumber, "error", err.Err)
}

func (g *Gateway) recipient(audience Audience, view ports.OrderView) Recipient {
	switch audience {
	case AudienceCustomer:
		phone := view.Customer.Phone
		if phone == "" {
			phone = view.ShippingAddress.Phone
		}
		return Recipient{Name: view.Customer.Name, Email: view.Customer.Email, Phone: phone}
	case AudienceAdmin:
		return g.admin
	default:
		return Recipient{}
	}
}
