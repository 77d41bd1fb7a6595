// Package jobs runs the service's scheduled background work on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// NotificationDispatchJob claims pending rows from the notification outbox,
// marks them dispatched and hands them to the notification gateway. It runs
// every second by default; a tick is skipped while the previous run is still
// sending.
//
// # Usage
//
//	dispatch := jobs.NewNotificationDispatchJob(handler, jobs.NotificationDispatchJobOptions{
//		BatchSize: 50,
//		Metrics:   m,
//	}, logger)
//
//	jobManager := jobs.NewJobManager(dispatch)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. Rows already marked
// dispatched are never retried.
package jobs
