// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
// Each job wraps a command handler and skips a tick while the previous run
// is still in progress.
//
// # Available Jobs
//
// 1. EventRelayJob - re-broadcasts events that were committed but never reached the bus
// 2. OrderAutoCloseJob - closes DELIVERED orders after a configurable period
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, closeHandler, cfg, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Failed job starts stop
// any already running jobs.
package jobs
