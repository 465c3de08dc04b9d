// Package queries contains read-only operations for retrieving parcel state.
// Implements the Query side of the CQRS pattern: handlers read the database
// directly and return response objects shaped for the transport layer, never
// touching the command-side unit of work.
package queries

import (
	"errors"
	"time"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery retrieves one parcel with its full audit trail.
// The requester is part of the query because visibility is per-actor: the
// handler returns an access denial instead of data for unrelated actors.
//
// Example:
//
//	query, err := NewGetParcelQuery(parcelID, requester)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetParcelQueryHandler(db)
//	parcelView, err := handler.Handle(ctx, query)
type GetParcelQuery struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	requester actor.Actor

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a query for one parcel on behalf of an actor.
func NewGetParcelQuery(parcelID kernel.UUID, requester actor.Actor) (GetParcelQuery, error) {
	query := GetParcelQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setParcelID(parcelID),
		query.setRequester(requester),
	); err != nil {
		return GetParcelQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetParcelQueryIsNotConstructed if validation fails.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ParcelID returns the identifier of the requested parcel.
func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Requester returns the actor asking for the parcel.
func (q GetParcelQuery) Requester() actor.Actor {
	return q.requester
}

func (q *GetParcelQuery) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	q.parcelID = parcelID
	return nil
}

func (q *GetParcelQuery) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}

	q.requester = requester
	return nil
}

// GetParcelQueryResponse is the full per-parcel view: current state plus the
// audit trail ordered oldest first.
type GetParcelQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	SenderID       kernel.UUID
	RecipientID    kernel.UUID
	CourierID      *kernel.UUID
	Status         string
	Notes          *string
	Location       *kernel.GeoPoint
	Destination    kernel.Address
	SubmittedAt    time.Time
	DeliveredAt    *time.Time
	History        []HistoryEntryResponse
}

// HistoryEntryResponse is one entry of a parcel's audit trail.
type HistoryEntryResponse struct {
	Status     string
	Location   *kernel.GeoPoint
	Notes      *string
	RecordedAt time.Time
}
