package commands

import (
	"context"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
)

// BackfillLocationsCommandHandler resolves coordinates for delivered parcels
// that have none. It re-affirms the Delivered status through the transition
// engine, which geocodes the destination best-effort; parcels whose
// destination still does not resolve are left untouched for the next run.
type BackfillLocationsCommandHandler struct {
	uowFactory ParcelUoWFactory
	engine     services.TransitionEngine
	now        func() time.Time
}

// NewBackfillLocationsCommandHandler creates a handler for the location
// backfill job. A nil clock defaults to time.Now.
func NewBackfillLocationsCommandHandler(
	uowFactory ParcelUoWFactory,
	engine services.TransitionEngine,
	now func() time.Time,
) BackfillLocationsCommandHandler {
	if now == nil {
		now = time.Now
	}
	return BackfillLocationsCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		now:        now,
	}
}

// Handle processes one backfill batch and returns how many parcels gained
// coordinates. Geocoding failures are not errors: the parcel simply stays in
// the batch candidate set. Persistence failures abort the whole batch.
func (h BackfillLocationsCommandHandler) Handle(
	ctx context.Context,
	command BackfillLocationsCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	historyRepo := uow.HistoryRepository()

	parcels, err := parcelRepo.GetDeliveredWithoutLocation(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, p := range parcels {
		outcome, transitionErr := h.engine.ComputeTransition(ctx, p, services.TransitionRequest{
			NewStatus: parcel.StatusDelivered,
		})
		if transitionErr != nil {
			return resolved, transitionErr
		}
		if outcome.Location == nil {
			continue
		}

		if err = p.Apply(outcome); err != nil {
			return resolved, err
		}

		if outcome.WriteHistory {
			entry, entryErr := parcel.NewHistoryEntry(
				kernel.NewUUID(), p.ID(), p.Status(), p.Location(), p.Notes(), h.now())
			if entryErr != nil {
				return resolved, entryErr
			}
			if err = historyRepo.Add(ctx, entry); err != nil {
				return resolved, err
			}
		}

		if err = parcelRepo.Update(ctx, p); err != nil {
			return resolved, err
		}
		resolved++
	}

	if err = uow.Commit(ctx); err != nil {
		return resolved, err
	}

	return resolved, nil
}
