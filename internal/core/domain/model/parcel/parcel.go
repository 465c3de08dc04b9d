package parcel

import (
	"errors"
	"fmt"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel or RestoreParcel factory methods.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

	// ErrDeliveredAtInconsistent is returned when a parcel's delivery timestamp
	// does not agree with its status.
	ErrDeliveredAtInconsistent = errors.New(
		"delivery timestamp must be set if and only if the parcel is delivered")
)

// Parcel represents a package moving between two users. It is the aggregate
// root that owns the status lifecycle, the optional known position, and the
// delivery timestamp.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier and a non-empty tracking number
//   - Sender and recipient must be valid identifiers
//   - Status transitions follow the Status state machine
//   - DeliveredAt is non-nil if and only if the status is Delivered
//   - Latitude and longitude are carried together as one optional GeoPoint
//   - Can only be created through NewParcel or RestoreParcel
//
// The current status and position are a cache of the latest history entry;
// both are written together under one transaction by the update use case.
type Parcel struct {
	// id is the unique identifier for the parcel
	id kernel.UUID

	// trackingNumber is the externally visible identifier, immutable after creation
	trackingNumber string

	// senderID identifies the user who sent the parcel
	senderID kernel.UUID

	// recipientID identifies the user receiving the parcel
	recipientID kernel.UUID

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *kernel.UUID

	// status is the current state in the delivery lifecycle
	status Status

	// notes is optional free text attached by the courier
	notes *string

	// location is the last known position (nil when never located)
	location *kernel.GeoPoint

	// destination is the delivery address, used for geocoding
	destination kernel.Address

	// submittedAt is when the parcel entered the system, immutable
	submittedAt time.Time

	// deliveredAt is set exactly once, when the parcel becomes Delivered
	deliveredAt *time.Time

	// version is the optimistic concurrency counter maintained by persistence
	version int

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel creates a Parcel in the Sent status with validation. This is the
// only way to create a new parcel, ensuring all business invariants hold from
// the start.
//
// The destination address may be incomplete at creation time; it only has to
// be complete when it is used for geocoding.
func NewParcel(
	id kernel.UUID,
	trackingNumber string,
	senderID kernel.UUID,
	recipientID kernel.UUID,
	destination kernel.Address,
	submittedAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        StatusSent,
		submittedAt:   submittedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setSender(senderID),
		p.setRecipient(recipientID),
		p.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a Parcel from persisted state.
// It re-checks the structural invariants so corrupt rows surface as errors
// instead of invalid aggregates.
func RestoreParcel(
	id kernel.UUID,
	trackingNumber string,
	senderID kernel.UUID,
	recipientID kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	notes *string,
	location *kernel.GeoPoint,
	destination kernel.Address,
	submittedAt time.Time,
	deliveredAt *time.Time,
	version int,
) (*Parcel, error) {
	p := &Parcel{
		submittedAt:   submittedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setSender(senderID),
		p.setRecipient(recipientID),
		p.setDestination(destination),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if (deliveredAt != nil) != (status == StatusDelivered) {
		return nil, ErrDeliveredAtInconsistent
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cID := *courierID
		p.courierID = &cID
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		p.location = &loc
	}

	p.status = status
	p.notes = notes
	p.deliveredAt = deliveredAt
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
// Returns ErrParcelIsNotConstructed otherwise.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the externally visible parcel identifier.
func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

// Sender returns the sending user's identifier.
func (p *Parcel) Sender() kernel.UUID {
	return p.senderID
}

// Recipient returns the receiving user's identifier.
func (p *Parcel) Recipient() kernel.UUID {
	return p.recipientID
}

// Courier returns the assigned courier's identifier.
// Returns nil if no courier is assigned.
func (p *Parcel) Courier() *kernel.UUID {
	return p.courierID
}

// Status returns the current status of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// Notes returns the courier notes attached to the parcel, nil when absent.
func (p *Parcel) Notes() *string {
	return p.notes
}

// Location returns the last known position, nil when the parcel was never located.
func (p *Parcel) Location() *kernel.GeoPoint {
	return p.location
}

// Destination returns the delivery address.
func (p *Parcel) Destination() kernel.Address {
	return p.destination
}

// SubmittedAt returns when the parcel entered the system.
func (p *Parcel) SubmittedAt() time.Time {
	return p.submittedAt
}

// DeliveredAt returns when the parcel was delivered, nil while undelivered.
func (p *Parcel) DeliveredAt() *time.Time {
	return p.deliveredAt
}

// Version returns the optimistic concurrency counter.
func (p *Parcel) Version() int {
	return p.version
}

// AssignCourier assigns the parcel to a courier.
// Reassignment is allowed while the parcel has not been delivered.
func (p *Parcel) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if p.status.IsTerminal() {
		return errs.NewConflictError("cannot reassign a delivered package")
	}

	p.courierID = &courierID
	return nil
}

// TransitionOutcome is the computed effect of a status update request:
// the final state the parcel must take, plus whether a history entry has to
// be appended alongside it.
type TransitionOutcome struct {
	Status       Status
	Location     *kernel.GeoPoint
	Notes        *string
	DeliveredAt  *time.Time
	WriteHistory bool
}

// Apply moves the parcel to the state described by the outcome.
// The outcome must come from the transition engine; Apply re-checks only the
// structural invariants, not the transition rules.
func (p *Parcel) Apply(outcome TransitionOutcome) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := outcome.Status.Validate(); err != nil {
		return err
	}

	if (outcome.DeliveredAt != nil) != (outcome.Status == StatusDelivered) {
		return ErrDeliveredAtInconsistent
	}

	if outcome.Location != nil {
		if err := outcome.Location.Validate(); err != nil {
			return err
		}
	}

	p.status = outcome.Status
	p.location = outcome.Location
	p.notes = outcome.Notes
	p.deliveredAt = outcome.DeliveredAt
	return nil
}

// setID validates and sets the parcel's unique identifier.
// This is a private method used only during construction.
func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setTrackingNumber validates and sets the immutable tracking number.
func (p *Parcel) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	p.trackingNumber = trackingNumber
	return nil
}

// setSender validates and sets the sending user's identifier.
func (p *Parcel) setSender(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("sender id", err)
	}
	p.senderID = senderID
	return nil
}

// setRecipient validates and sets the receiving user's identifier.
func (p *Parcel) setRecipient(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("recipient id", err)
	}
	p.recipientID = recipientID
	return nil
}

// setDestination validates and sets the delivery address.
func (p *Parcel) setDestination(destination kernel.Address) error {
	if err := destination.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	p.destination = destination
	return nil
}
