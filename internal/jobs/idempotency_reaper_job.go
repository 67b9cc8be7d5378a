package jobs

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReaperSchedule runs the reaper once a minute.
const DefaultReaperSchedule = "@every 1m"

const reaperRunTimeout = 30 * time.Second

// IdempotencyPurger is satisfied by commands.PurgeExpiredIdempotencyRecordsCommandHandler.
type IdempotencyPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeExpiredIdempotencyRecordsCommand) (int64, error)
}

// IdempotencyReaperJob deletes expired idempotency records on a cron schedule.
type IdempotencyReaperJob struct {
	purger   IdempotencyPurger
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewIdempotencyReaperJob accepts standard five-field, six-field (with
// seconds) and descriptor ("@every 30s") schedules. An empty schedule
// falls back to DefaultReaperSchedule.
func NewIdempotencyReaperJob(purger IdempotencyPurger, schedule string, logger *slog.Logger) *IdempotencyReaperJob {
	if schedule == "" {
		schedule = DefaultReaperSchedule
	}
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	return &IdempotencyReaperJob{
		purger:   purger,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "idempotency_reaper_job"),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *IdempotencyReaperJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idempotency reaper job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (j *IdempotencyReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Idempotency reaper job stopped")
}

// RunOnce performs a single purge outside the schedule.
func (j *IdempotencyReaperJob) RunOnce(ctx context.Context) (int64, error) {
	return j.purger.Handle(ctx, commands.NewPurgeExpiredIdempotencyRecordsCommand())
}

func (j *IdempotencyReaperJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reaperRunTimeout)
	defer cancel()

	removed, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Idempotency reaper job failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired idempotency records removed", "count", removed)
	}
}
