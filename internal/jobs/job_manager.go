package jobs

import (
	"fmt"
	"log/slog"
)

// Job is a background task with a start/stop lifecycle.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs of the service as a unit.
type JobManager struct {
	jobs   []Job
	logger *slog.Logger
}

// NewJobManager keeps jobs in start order; StopAll stops them in reverse.
func NewJobManager(logger *slog.Logger, jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs, logger: logger.With("component", "job_manager")}
}

// StartAll starts every job. If one fails, the jobs already started are
// stopped and the error is returned.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				jm.jobs[j].Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}
	jm.logger.Info("All jobs started", "count", len(jm.jobs))
	return nil
}

// StopAll stops every job.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
