package parcel

import (
	"fmt"

	"tracker/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with defined transitions to ensure
// parcels follow the correct delivery workflow.
//
// State transitions:
//
//	Sent ──┬──> InDelivery ──> Delivered
//	       │        │              │
//	       │        └──┐           └──┐
//	       │     (re-affirm      (re-affirm
//	       │      for pings)      for corrections)
//	       └──────────────────> Delivered
//
// Delivered is the terminal state: the only request accepted afterwards is a
// re-affirmation of Delivered itself, which allows notes and location
// corrections without reopening the parcel.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusSent is the initial status when a parcel is registered.
	// The parcel is waiting to be picked up by a courier.
	StatusSent

	// StatusInDelivery indicates a courier is moving the parcel.
	// Re-affirming InDelivery is allowed so couriers can report location
	// pings while en route.
	StatusInDelivery

	// StatusDelivered indicates the parcel reached its recipient.
	// This is the terminal state; only re-affirmation is permitted.
	StatusDelivered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusSent:       "Sent",
		StatusInDelivery: "In Delivery",
		StatusDelivered:  "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusSent:       "Sent",
		StatusInDelivery: "In Delivery",
		StatusDelivered:  "Delivered",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Sent, In Delivery, Delivered.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromName maps a canonical status name to its Status value.
// Returns an error for names outside the known vocabulary.
func StatusFromName(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status name is invalid",
		fmt.Errorf("%q is not a valid status name", name))
}

// IsTerminal reports whether the status permits no further transitions
// other than re-affirmation.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// CanTransitionTo validates a requested transition from the current status.
//
// Allowed transitions:
//   - Sent -> InDelivery, Delivered
//   - InDelivery -> InDelivery (location ping), Delivered
//   - Delivered -> Delivered (re-affirmation for corrections)
//
// Returns nil if the transition is allowed. A transition out of the Delivered
// terminal state yields a ConflictError; any other disallowed transition
// yields a ValueIsInvalidError.
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if s == StatusDelivered {
		if target == StatusDelivered {
			return nil
		}
		return errs.NewConflictError(
			"cannot change the status of a package that has already been delivered, " +
				"unless re-affirming 'Delivered' status")
	}

	switch s {
	case StatusSent:
		if target == StatusInDelivery || target == StatusDelivered {
			return nil
		}
	case StatusInDelivery:
		if target == StatusInDelivery || target == StatusDelivered {
			return nil
		}
	}

	return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
		fmt.Errorf("cannot change status from %s to %s", s, target))
}
