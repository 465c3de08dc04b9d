package commands

import (
	"context"
	"errors"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/errs"
)

// UpdateParcelStatusCommandHandler orchestrates a parcel status update.
// It loads the parcel, enforces the access policy, runs the transition
// engine, and persists the updated parcel together with its history entry
// inside a single transaction.
//
// Expected failures are typed for the transport layer: a missing parcel is
// an ObjectNotFoundError, a denied actor an AccessDeniedError, an illegal
// transition a ConflictError, and bad input a validation error.
//
// Example:
//
//	handler := NewUpdateParcelStatusCommandHandler(uowFactory, engine, nil)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // 404
//	case errors.Is(err, errs.ErrAccessDenied):
//	    // 403
//	case errors.Is(err, errs.ErrConflict):
//	    // 409
//	case err != nil:
//	    // 400 or 500
//	}
type UpdateParcelStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	engine     services.TransitionEngine
	now        func() time.Time
}

// NewUpdateParcelStatusCommandHandler creates a handler for parcel status updates.
// A nil clock defaults to time.Now; tests inject a fixed clock.
func NewUpdateParcelStatusCommandHandler(
	uowFactory UoWFactory,
	engine services.TransitionEngine,
	now func() time.Time,
) UpdateParcelStatusCommandHandler {
	if now == nil {
		now = time.Now
	}
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		engine:     engine,
		now:        now,
	}
}

// Handle processes the status update command and returns the updated parcel.
//
// The flow: load the parcel, check the actor may modify it, resolve the
// requested status definition, compute the transition, apply it, append a
// history entry when the transition requires one, and save the parcel under
// its optimistic version guard.
func (h UpdateParcelStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateParcelStatusCommand,
) (*parcel.Parcel, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	statusRepo := uow.StatusDefinitionRepository()
	historyRepo := uow.HistoryRepository()

	p, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return nil, err
	}

	if decision := h.policy.CanModify(p, command.Requester()); !decision.Authorized {
		return nil, errs.NewAccessDeniedError(decision.Reason)
	}

	definition, err := statusRepo.Get(ctx, command.StatusDefinitionID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewValueIsInvalidErrorWithCause("status definition id", err)
	}
	if err != nil {
		return nil, err
	}

	newStatus, err := definition.Status()
	if err != nil {
		return nil, err
	}

	outcome, err := h.engine.ComputeTransition(ctx, p, services.TransitionRequest{
		NewStatus: newStatus,
		Location:  command.Location(),
		Address:   command.Address(),
		Notes:     command.Notes(),
	})
	if err != nil {
		return nil, err
	}

	if err = p.Apply(outcome); err != nil {
		return nil, err
	}

	if outcome.WriteHistory {
		entry, entryErr := parcel.NewHistoryEntry(
			kernel.NewUUID(), p.ID(), p.Status(), p.Location(), p.Notes(), h.now())
		if entryErr != nil {
			return nil, entryErr
		}
		if err = historyRepo.Add(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
