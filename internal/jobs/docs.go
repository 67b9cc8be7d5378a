// Package jobs runs the scheduled background work of the order service on
// github.com/robfig/cron/v3.
//
// IdempotencyReaperJob calls the purge command on IDEMPOTENCY_REAPER_SCHEDULE
// (default "@every 1m"). With the postgres backend it deletes rows whose
// expires_at has passed; with the redis backend keys expire natively and the
// purge removes nothing. Overlapping runs are skipped.
//
//	reaper := jobs.NewIdempotencyReaperJob(purgeHandler, cfg.ReaperSchedule, logger)
//	manager := jobs.NewJobManager(logger, reaper)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
package jobs
