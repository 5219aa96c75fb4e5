// Package jobs provides scheduled background tasks for the check core.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds enabled) and
// delegate every unit of work to a command handler.
//
// # Available Jobs
//
// 1. CheckLockSweepJob - removes expired workstation leases on checks
//
// # Usage
//
//	jobManager := jobs.NewJobManager(purgeLocksHandler, cfg.LockSweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. A job that fails to
// start stops the ones already running.
package jobs
