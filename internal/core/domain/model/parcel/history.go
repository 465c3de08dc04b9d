package parcel

import (
	"errors"
	"time"

	"tracker/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry constructor")

// HistoryEntry is one immutable record of the parcel's audit trail: the
// status and position the parcel had at a point in time. Entries are
// append-only; the engine never mutates or removes them.
type HistoryEntry struct {
	id            kernel.UUID
	parcelID      kernel.UUID
	status        Status
	location      *kernel.GeoPoint
	notes         *string
	recordedAt    time.Time
	isConstructed bool
}

// NewHistoryEntry creates an audit record for a parcel.
func NewHistoryEntry(
	id kernel.UUID,
	parcelID kernel.UUID,
	status Status,
	location *kernel.GeoPoint,
	notes *string,
	recordedAt time.Time,
) (*HistoryEntry, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	entry := &HistoryEntry{
		id:            id,
		parcelID:      parcelID,
		status:        status,
		notes:         notes,
		recordedAt:    recordedAt,
		isConstructed: true,
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		entry.location = &loc
	}

	return entry, nil
}

// RestoreHistoryEntry reconstructs a HistoryEntry from persisted state.
func RestoreHistoryEntry(
	id kernel.UUID,
	parcelID kernel.UUID,
	status Status,
	location *kernel.GeoPoint,
	notes *string,
	recordedAt time.Time,
) (*HistoryEntry, error) {
	return NewHistoryEntry(id, parcelID, status, location, notes, recordedAt)
}

// Validate ensures the HistoryEntry was properly constructed.
func (e *HistoryEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *HistoryEntry) ID() kernel.UUID {
	return e.id
}

// ParcelID returns the identifier of the parcel this entry belongs to.
func (e *HistoryEntry) ParcelID() kernel.UUID {
	return e.parcelID
}

// Status returns the parcel status recorded by this entry.
func (e *HistoryEntry) Status() Status {
	return e.status
}

// Location returns the recorded position, nil when unknown at the time.
func (e *HistoryEntry) Location() *kernel.GeoPoint {
	return e.location
}

// Notes returns the notes recorded with this entry, nil when absent.
func (e *HistoryEntry) Notes() *string {
	return e.notes
}

// RecordedAt returns when this entry was written.
func (e *HistoryEntry) RecordedAt() time.Time {
	return e.recordedAt
}
