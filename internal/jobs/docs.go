// Package jobs provides scheduled background tasks for the tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the tracking service.
//
// # Available Jobs
//
// 1. LocationBackfillJob - Periodically resolves coordinates for delivered
// parcels whose delivery location could not be geocoded at delivery time.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(backfillHandler, batchSize, schedule, logger)
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
// The backfill job treats unresolvable addresses as expected outcomes: the
// affected parcels are skipped and picked up again on a later run. Only
// transport or database failures are logged as errors.
package jobs
