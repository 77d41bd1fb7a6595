package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// DispatchNotificationsCommandHandler moves notification intents from the
// outbox to the Notifier.
//
// Claimed entries are marked dispatched and committed before anything is
// sent, so delivery is attempted at most once and no order lock is held
// while channels run. Entries whose order or view cannot be loaded are
// logged and dropped.
//
// Once claimed, every entry is attempted even if ctx expires mid-batch: the
// rows are already marked, and the Notifier bounds each channel on its own.
type DispatchNotificationsCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   ports.OrderViewResolver
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OrderUoWFactory,
	resolver ports.OrderViewResolver,
	notifier ports.Notifier,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		notifier:   notifier,
		logger:     logger.With("component", "notification-dispatcher"),
	}
}

type claimedNotification struct {
	entry ports.OutboxEntry
	order *order.Order
}

// Handle returns how many notifications were handed to the Notifier.
func (h *DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	claimed, err := h.claim(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	notifyCtx := context.WithoutCancel(ctx)
	sent := 0
	for _, c := range claimed {
		view, resolveErr := h.resolver.Resolve(notifyCtx, c.order)
		if resolveErr != nil {
			h.logger.ErrorContext(ctx, "failed to resolve order view",
				"order_id", c.entry.OrderID.String(), "kind", string(c.entry.Kind), "error", resolveErr)
			continue
		}

		switch c.entry.Kind {
		case ports.OrderCreated:
			// The order may have moved on since it was placed.
			view.Status = c.entry.Status
			h.notifier.NotifyOrderCreated(notifyCtx, view)
		case ports.StatusChanged:
			h.notifier.NotifyStatusChanged(notifyCtx, view, c.entry.Status, c.entry.Note)
		default:
			h.logger.WarnContext(ctx, "unknown notification kind", "kind", string(c.entry.Kind))
			continue
		}
		sent++
	}

	return sent, nil
}

func (h *DispatchNotificationsCommandHandler) claim(ctx context.Context, limit int) ([]claimedNotification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationOutbox()
	entries, err := outbox.ClaimPending(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	orderRepo := uow.OrderRepository()
	claimed := make([]claimedNotification, 0, len(entries))
	ids := make([]kernel.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)

		o, getErr := orderRepo.Get(ctx, entry.OrderID)
		if getErr != nil {
			h.logger.ErrorContext(ctx, "dropping notification for unreadable order",
				"order_id", entry.OrderID.String(), "error", getErr)
			continue
		}
		claimed = append(claimed, claimedNotification{entry: entry, order: o})
	}

	if err = outbox.MarkDispatched(ctx, ids, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
