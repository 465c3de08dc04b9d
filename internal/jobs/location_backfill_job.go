package jobs

import (
	"context"
	"log/slog"

	"tracker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LocationBackfillJob periodically resolves coordinates for delivered parcels
// that were marked delivered while the geocoding service was unavailable.
type LocationBackfillJob struct {
	handler   commands.BackfillLocationsCommandHandler
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLocationBackfillJob creates a job that runs BackfillLocationsCommandHandler
// on the given cron schedule, resolving at most batchSize parcels per run.
func NewLocationBackfillJob(
	handler commands.BackfillLocationsCommandHandler,
	batchSize int,
	schedule string,
	logger *slog.Logger,
) *LocationBackfillJob {
	return &LocationBackfillJob{
		handler:   handler,
		batchSize: batchSize,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "location_backfill_job"),
	}
}

// Start schedules the backfill job.
func (j *LocationBackfillJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewBackfillLocationsCommand(j.batchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Location backfill job misconfigured", "error", err)
			return
		}

		resolved, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Location backfill job failed", "error", err)
			return
		}

		if resolved > 0 {
			j.logger.InfoContext(ctx, "Location backfill job resolved parcels", "resolved", resolved)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location backfill job started", "schedule", j.schedule)
	return nil
}

// Stop stops the backfill job.
func (j *LocationBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location backfill job stopped")
}
