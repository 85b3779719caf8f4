// Package jobs provides scheduled background tasks for the waste pickup system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order coordination.
//
// # Available Jobs
//
// 1. AllocationSweepJob - Runs every minute to release drivers and vehicles
// still marked busy for orders that no longer hold them
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(releaseStaleAllocationsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep logs failures and keeps running; a failed pass is retried on the
// next tick. Failed job starts stop any already running jobs.
package jobs
