package services

import (
	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/parcel"
)

// AccessType classifies the relationship that grants an actor access to a parcel.
type AccessType int

const (
	// AccessNone means the actor has no relationship to the parcel.
	AccessNone AccessType = iota

	// AccessSender means the actor sent the parcel.
	AccessSender

	// AccessRecipient means the actor is receiving the parcel.
	AccessRecipient

	// AccessAssignedCourier means the actor is the courier assigned to the parcel.
	AccessAssignedCourier

	// AccessAdmin means the actor has administrative access.
	AccessAdmin
)

// String returns the human-readable name of the access type.
func (t AccessType) String() string {
	switch t {
	case AccessSender:
		return "Sender"
	case AccessRecipient:
		return "Recipient"
	case AccessAssignedCourier:
		return "AssignedCourier"
	case AccessAdmin:
		return "Admin"
	default:
		return "None"
	}
}

// AccessDecision is the outcome of an access check: whether the actor is
// authorized, through which relationship, and a user-facing reason when denied.
type AccessDecision struct {
	Authorized bool
	Access     AccessType
	Reason     string
}

// Denial reasons rendered to callers. The courier and user variants tell the
// actor which parcels they can reach instead of a blanket refusal.
const (
	reasonCourierDenied = "couriers may only access packages assigned to them"
	reasonUserDenied    = "you may only access packages you sent or are receiving"
	reasonGenericDenied = "you do not have access to this package"
	reasonViewOnly      = "only the assigned courier or an administrator may modify a package"
)

// AccessPolicy is a domain service that decides whether an actor may view or
// modify a parcel. It is a pure function of the parcel and actor state: no
// I/O, no failure modes. A nil parcel is treated as "not authorized" rather
// than an error, keeping the predicate total.
//
// Rules, in precedence order (first match wins):
//  1. Admin role        -> authorized as Admin
//  2. Actor is sender   -> authorized as Sender
//  3. Actor is recipient-> authorized as Recipient
//  4. Courier role and assigned to the parcel -> authorized as AssignedCourier
//  5. Otherwise not authorized, with a role-specific reason
//
// Senders and recipients may view but never modify: modification requires
// Admin or AssignedCourier access.
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Authorize decides whether the actor may view the parcel.
func (AccessPolicy) Authorize(p *parcel.Parcel, a actor.Actor) AccessDecision {
	if p == nil {
		return AccessDecision{Access: AccessNone, Reason: reasonGenericDenied}
	}

	if a.Role == actor.RoleAdmin {
		return AccessDecision{Authorized: true, Access: AccessAdmin}
	}

	if p.Sender().IsEqual(a.ID) {
		return AccessDecision{Authorized: true, Access: AccessSender}
	}

	if p.Recipient().IsEqual(a.ID) {
		return AccessDecision{Authorized: true, Access: AccessRecipient}
	}

	if a.Role == actor.RoleCourier && p.Courier() != nil && p.Courier().IsEqual(a.ID) {
		return AccessDecision{Authorized: true, Access: AccessAssignedCourier}
	}

	switch a.Role {
	case actor.RoleCourier:
		return AccessDecision{Access: AccessNone, Reason: reasonCourierDenied}
	case actor.RoleUser:
		return AccessDecision{Access: AccessNone, Reason: reasonUserDenied}
	default:
		return AccessDecision{Access: AccessNone, Reason: reasonGenericDenied}
	}
}

// CanModify decides whether the actor may change the parcel's status.
// True only for Admin and AssignedCourier access; senders and recipients are
// downgraded to a view-only denial.
func (policy AccessPolicy) CanModify(p *parcel.Parcel, a actor.Actor) AccessDecision {
	decision := policy.Authorize(p, a)
	if !decision.Authorized {
		return decision
	}

	if decision.Access == AccessAdmin || decision.Access == AccessAssignedCourier {
		return decision
	}

	return AccessDecision{Access: decision.Access, Reason: reasonViewOnly}
}
