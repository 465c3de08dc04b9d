package parcel

import (
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// StatusDefinition is immutable reference data describing one entry of the
// status vocabulary. Update requests carry a status definition id; the
// definition's name is what keys the transition graph.
//
// New definitions may be added administratively, but the three canonical
// names ("Sent", "In Delivery", "Delivered") are load-bearing.
type StatusDefinition struct {
	id          kernel.UUID
	name        string
	description string
}

// NewStatusDefinition creates a StatusDefinition with a validated id and
// non-empty name.
func NewStatusDefinition(id kernel.UUID, name string, description string) (*StatusDefinition, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("status definition name")
	}

	return &StatusDefinition{
		id:          id,
		name:        name,
		description: description,
	}, nil
}

// ID returns the definition's unique identifier.
func (d *StatusDefinition) ID() kernel.UUID {
	return d.id
}

// Name returns the definition's unique name.
func (d *StatusDefinition) Name() string {
	return d.name
}

// Description returns the definition's human-readable description.
func (d *StatusDefinition) Description() string {
	return d.description
}

// Status maps the definition's name onto the transition-graph vocabulary.
// Returns an error for definitions outside the canonical names.
func (d *StatusDefinition) Status() (Status, error) {
	return StatusFromName(d.name)
}
