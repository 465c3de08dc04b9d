package services

import (
	"context"
	"fmt"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// TransitionRequest describes a requested status update: the target status
// plus optional position information and notes. Location and Address are
// alternatives; when both are present the explicit location wins.
type TransitionRequest struct {
	NewStatus parcel.Status
	Location  *kernel.GeoPoint
	Address   *kernel.Address
	Notes     *string
}

// TransitionEngine is the domain service that validates a requested status
// change against a parcel's current state, resolves the resulting position,
// and decides whether a history entry must be appended.
//
// The engine is pure apart from geocoding: the only I/O it performs is the
// Geocoder call, and only when the request requires one. Callers bound that
// call with a context deadline.
//
// Location resolution precedence (first applicable wins):
//  1. Explicit coordinates in the request are used directly.
//  2. A supplied address is geocoded; failure fails the whole transition.
//  3. On delivery with no position supplied, the destination address is
//     geocoded best-effort; failure keeps the prior coordinates.
//  4. Otherwise the parcel's current coordinates are kept.
//
// A history entry is required when the status changed, the position changed,
// the notes changed, or an In Delivery status was re-affirmed. The last case
// re-logs repeated location pings while the courier is en route.
type TransitionEngine struct {
	geocoder ports.Geocoder
	now      func() time.Time
}

// NewTransitionEngine creates a TransitionEngine using the given geocoder.
// A nil clock defaults to time.Now; tests inject a fixed clock.
func NewTransitionEngine(geocoder ports.Geocoder, now func() time.Time) TransitionEngine {
	if now == nil {
		now = time.Now
	}
	return TransitionEngine{
		geocoder: geocoder,
		now:      now,
	}
}

// ComputeTransition validates the request against the parcel's current status
// and produces the resulting state. The parcel is not mutated; the caller
// applies the outcome and appends the history entry under one transaction.
//
// Expected failures are typed: a terminal-state violation is a ConflictError,
// an unknown status or failed geocoding of a supplied address is a
// ValueIsInvalidError.
func (e TransitionEngine) ComputeTransition(
	ctx context.Context,
	p *parcel.Parcel,
	req TransitionRequest,
) (parcel.TransitionOutcome, error) {
	if err := p.Validate(); err != nil {
		return parcel.TransitionOutcome{}, err
	}

	if err := p.Status().CanTransitionTo(req.NewStatus); err != nil {
		return parcel.TransitionOutcome{}, err
	}

	location, err := e.resolveLocation(ctx, p, req)
	if err != nil {
		return parcel.TransitionOutcome{}, err
	}

	notes := p.Notes()
	if req.Notes != nil {
		notes = req.Notes
	}

	outcome := parcel.TransitionOutcome{
		Status:      req.NewStatus,
		Location:    location,
		Notes:       notes,
		DeliveredAt: e.resolveDeliveredAt(p, req.NewStatus),
	}

	outcome.WriteHistory = p.Status() != req.NewStatus ||
		!kernel.GeoPointsEqual(p.Location(), location) ||
		notesChanged(p.Notes(), notes) ||
		(req.NewStatus == parcel.StatusInDelivery && p.Status() == parcel.StatusInDelivery)

	return outcome, nil
}

// resolveLocation applies the location precedence rules.
func (e TransitionEngine) resolveLocation(
	ctx context.Context,
	p *parcel.Parcel,
	req TransitionRequest,
) (*kernel.GeoPoint, error) {
	if req.Location != nil {
		if err := req.Location.Validate(); err != nil {
			return nil, err
		}
		loc := *req.Location
		return &loc, nil
	}

	if req.Address != nil {
		return e.geocodeSupplied(ctx, *req.Address)
	}

	if req.NewStatus == parcel.StatusDelivered && p.Destination().IsComplete() {
		return e.geocodeBestEffort(ctx, p)
	}

	return p.Location(), nil
}

// geocodeSupplied resolves an address the caller explicitly provided.
// Any failure here fails the transition: the caller asked for this address
// and silently ignoring it would hide their mistake.
func (e TransitionEngine) geocodeSupplied(
	ctx context.Context,
	address kernel.Address,
) (*kernel.GeoPoint, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if !address.IsComplete() {
		return nil, errs.NewValueIsRequiredError(
			"address must have street, city, zip code and country to be geocoded")
	}

	result, err := e.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("geocoding failed", err)
	}
	if !result.Resolved() {
		return nil, errs.NewValueIsInvalidErrorWithCause("geocoding failed",
			fmt.Errorf("address %q could not be resolved: %s", address, result.FailureReason))
	}

	return result.Location, nil
}

// geocodeBestEffort resolves the parcel's destination on delivery.
// Delivery must complete even when geocoding is down, so every failure path
// falls back to the parcel's prior coordinates.
func (e TransitionEngine) geocodeBestEffort(
	ctx context.Context,
	p *parcel.Parcel,
) (*kernel.GeoPoint, error) {
	result, err := e.geocoder.Geocode(ctx, p.Destination())
	if err != nil || !result.Resolved() {
		return p.Location(), nil
	}
	return result.Location, nil
}

// resolveDeliveredAt sets the delivery timestamp exactly once.
// Re-affirming Delivered keeps the original timestamp.
func (e TransitionEngine) resolveDeliveredAt(p *parcel.Parcel, newStatus parcel.Status) *time.Time {
	if newStatus != parcel.StatusDelivered {
		return nil
	}
	if p.DeliveredAt() != nil {
		return p.DeliveredAt()
	}
	deliveredAt := e.now()
	return &deliveredAt
}

// notesChanged compares optional notes by text content.
func notesChanged(prior *string, next *string) bool {
	if prior == nil || next == nil {
		return prior != next
	}
	return *prior != *next
}
