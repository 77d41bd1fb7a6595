package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// EverySecond is the default dispatch schedule.
const EverySecond = "* * * * * *"

type notificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (int, error)
}

// NotificationDispatchJob drains the notification outbox on a schedule.
// A run that is still sending when the next tick fires makes that tick a no-op.
type NotificationDispatchJob struct {
	handler   notificationDispatcher
	batchSize int
	schedule  string
	timeout   time.Duration
	metrics   *metrics.Metrics
	cron      *cron.Cron
	logger    *slog.Logger
}

type NotificationDispatchJobOptions struct {
	BatchSize int
	// Schedule is a six-field cron expression; empty means EverySecond.
	Schedule string
	// Timeout bounds claiming a batch; claimed rows are always attempted. Zero means 30s.
	Timeout time.Duration
	Metrics *metrics.Metrics
}

func NewNotificationDispatchJob(
	handler notificationDispatcher,
	opts NotificationDispatchJobOptions,
	logger *slog.Logger,
) *NotificationDispatchJob {
	if opts.Schedule == "" {
		opts.Schedule = EverySecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &NotificationDispatchJob{
		handler:   handler,
		batchSize: opts.BatchSize,
		schedule:  opts.Schedule,
		timeout:   opts.Timeout,
		metrics:   opts.Metrics,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

// Start validates the batch size and schedules the job.
func (j *NotificationDispatchJob) Start() error {
	if _, err := commands.NewDispatchNotificationsCommand(j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}

func (j *NotificationDispatchJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job misconfigured", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
		return
	}

	j.metrics.OutboxDispatched(sent)
	if sent > 0 {
		j.logger.DebugContext(ctx, "Notifications dispatched", "count", sent)
	}
}
