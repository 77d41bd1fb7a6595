package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the application's background jobs together.
type JobManager struct {
	jobs    []Job
	started []Job
}

func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts the jobs in order. When one fails, the ones already
// running are stopped before the error is returned.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d (%T): %w", i, job, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops running jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
