package queries

import (
	"errors"
	"fmt"
	"time"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrGetCourierParcelsQueryIsNotConstructed = errors.New(
	"GetCourierParcelsQuery must be created via NewGetCourierParcelsQuery constructor",
)

// Scope selects which slice of a courier's workload a listing returns.
type Scope int

const (
	// ScopeActive returns parcels still moving, newest submissions first.
	ScopeActive Scope = iota

	// ScopeDelivered returns completed parcels, most recently delivered first.
	ScopeDelivered

	// ScopeAll returns the courier's entire workload, newest submissions first.
	ScopeAll
)

// getValidScopeStrings returns a map of Scope values to their query-string names.
func getValidScopeStrings() map[Scope]string {
	return map[Scope]string{
		ScopeActive:    "active",
		ScopeDelivered: "delivered",
		ScopeAll:       "all",
	}
}

// Validate checks if the Scope value is valid.
func (s Scope) Validate() error {
	if _, ok := getValidScopeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("scope is invalid",
			fmt.Errorf("%d is not a valid scope", s))
	}
	return nil
}

// String returns the scope's query-string name.
func (s Scope) String() string {
	if str, ok := getValidScopeStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ScopeFromName maps a query-string name to its Scope value.
// An empty name defaults to ScopeActive.
func ScopeFromName(name string) (Scope, error) {
	if name == "" {
		return ScopeActive, nil
	}
	for scope, str := range getValidScopeStrings() {
		if str == name {
			return scope, nil
		}
	}
	return ScopeActive, errs.NewValueIsInvalidErrorWithCause("scope name is invalid",
		fmt.Errorf("%q is not a valid scope name", name))
}

// GetCourierParcelsQuery lists the parcels assigned to one courier.
// Only the courier themselves or an administrator may run it.
//
// Example:
//
//	query, err := NewGetCourierParcelsQuery(courierID, requester, ScopeActive)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetCourierParcelsQueryHandler(db)
//	parcels, err := handler.Handle(ctx, query)
type GetCourierParcelsQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	requester actor.Actor
	scope     Scope

	guard guard.ConstructorGuard
}

// NewGetCourierParcelsQuery creates a workload listing query for a courier.
func NewGetCourierParcelsQuery(
	courierID kernel.UUID,
	requester actor.Actor,
	scope Scope,
) (GetCourierParcelsQuery, error) {
	query := GetCourierParcelsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCourierID(courierID),
		query.setRequester(requester),
		query.setScope(scope),
	); err != nil {
		return GetCourierParcelsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCourierParcelsQueryIsNotConstructed if validation fails.
func (q GetCourierParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierParcelsQueryIsNotConstructed)
}

// CourierID returns the courier whose workload is requested.
func (q GetCourierParcelsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Requester returns the actor asking for the listing.
func (q GetCourierParcelsQuery) Requester() actor.Actor {
	return q.requester
}

// Scope returns which slice of the workload is requested.
func (q GetCourierParcelsQuery) Scope() Scope {
	return q.scope
}

func (q *GetCourierParcelsQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}

func (q *GetCourierParcelsQuery) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}

	q.requester = requester
	return nil
}

func (q *GetCourierParcelsQuery) setScope(scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	q.scope = scope
	return nil
}

// GetCourierParcelsQueryResponse is one row of a courier's workload listing.
type GetCourierParcelsQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	Status         string
	Location       *kernel.GeoPoint
	SubmittedAt    time.Time
	DeliveredAt    *time.Time
}
