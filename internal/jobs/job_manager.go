package jobs

import (
	"fmt"
	"log/slog"

	"tracker/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationBackfillJob *LocationBackfillJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	backfillHandler commands.BackfillLocationsCommandHandler,
	backfillBatchSize int,
	backfillSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationBackfillJob: NewLocationBackfillJob(
			backfillHandler, backfillBatchSize, backfillSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.locationBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start location backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.locationBackfillJob.Stop()
}
