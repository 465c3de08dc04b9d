// Package actor provides the ephemeral identity of the party performing an
// operation on a parcel. Actors are not persisted; they are derived from the
// authenticated request and passed into the domain for access decisions.
package actor

import (
	"fmt"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// Role classifies an actor for access decisions.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleUser is a regular account: a sender or recipient of parcels.
	RoleUser

	// RoleCourier is an account responsible for physically moving parcels
	// and updating their status.
	RoleCourier

	// RoleAdmin has unrestricted access to all parcels.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		RoleUser:    "User",
		RoleCourier: "Courier",
		RoleAdmin:   "Admin",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleUser:    "User",
		RoleCourier: "Courier",
		RoleAdmin:   "Admin",
	}
}

// Validate checks if the Role value is valid.
// Valid roles are: User, Courier, Admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements the fmt.Stringer interface and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromName maps a role name to its Role value.
// Returns an error for names outside the known vocabulary.
func RoleFromName(name string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == name {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role name is invalid",
		fmt.Errorf("%q is not a valid role name", name))
}

// Actor is the identity performing an operation: a user id plus its role.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates an Actor with a validated id and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	a := Actor{ID: id, Role: role}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

// Validate checks that the actor has a valid id and role.
func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	return a.Role.Validate()
}
