package commands

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
	"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
)

// UpdateParcelStatusCommand represents a request to move a parcel to a new
// status, optionally updating its position and courier notes.
//
// Position input is optional and comes in one of two shapes: explicit
// coordinates, or an address to geocode. When both are given the explicit
// coordinates win.
//
// Example:
//
//	cmd, err := NewUpdateParcelStatusCommand(parcelID, requester, statusID, nil, nil, &notes)
//	if err != nil {
//	    return fmt.Errorf("invalid status update: %w", err)
//	}
//
//	handler := NewUpdateParcelStatusCommandHandler(uowFactory, engine)
//	updated, err := handler.Handle(ctx, cmd)
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID           kernel.UUID
	requester          actor.Actor
	statusDefinitionID kernel.UUID
	location           *kernel.GeoPoint
	address            *kernel.Address
	notes              *string

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a command to update a parcel's status.
// Validates the parcel ID, the requesting actor, and the status definition ID;
// location, address and notes are optional and validated when present.
func NewUpdateParcelStatusCommand(
	parcelID kernel.UUID,
	requester actor.Actor,
	statusDefinitionID kernel.UUID,
	location *kernel.GeoPoint,
	address *kernel.Address,
	notes *string,
) (UpdateParcelStatusCommand, error) {
	cmd := UpdateParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setRequester(requester),
		cmd.setStatusDefinitionID(statusDefinitionID),
		cmd.setLocation(location),
		cmd.setAddress(address),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateParcelStatusCommandIsNotConstructed if validation fails.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel being updated.
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Requester returns the actor asking for the update.
func (c UpdateParcelStatusCommand) Requester() actor.Actor {
	return c.requester
}

// StatusDefinitionID returns the identifier of the requested status definition.
func (c UpdateParcelStatusCommand) StatusDefinitionID() kernel.UUID {
	return c.statusDefinitionID
}

// Location returns the explicit coordinates supplied with the request, nil when absent.
func (c UpdateParcelStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

// Address returns the address supplied for geocoding, nil when absent.
func (c UpdateParcelStatusCommand) Address() *kernel.Address {
	return c.address
}

// Notes returns the courier notes supplied with the request, nil when absent.
func (c UpdateParcelStatusCommand) Notes() *string {
	return c.notes
}

func (c *UpdateParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelStatusCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}

	c.requester = requester
	return nil
}

func (c *UpdateParcelStatusCommand) setStatusDefinitionID(statusDefinitionID kernel.UUID) error {
	if err := statusDefinitionID.Validate(); err != nil {
		return err
	}

	c.statusDefinitionID = statusDefinitionID
	return nil
}

func (c *UpdateParcelStatusCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	loc := *location
	c.location = &loc
	return nil
}

func (c *UpdateParcelStatusCommand) setAddress(address *kernel.Address) error {
	if address == nil {
		return nil
	}
	if err := address.Validate(); err != nil {
		return err
	}

	addr := *address
	c.address = &addr
	return nil
}
