// Package historyrepo provides persistence for the parcel audit trail.
// The trail is append-only: rows are inserted by the update use case and the
// backfill job, never modified.
package historyrepo

import (
	"time"

	"github.com/google/uuid"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// HistoryEntryDTO represents the database structure for one audit trail entry.
type HistoryEntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	Latitude   *float64
	Longitude  *float64
	Notes      *string
	RecordedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "parcel_history"
}

// fromDomain converts a history entry to its database representation.
func fromDomain(entry *parcel.HistoryEntry) HistoryEntryDTO {
	var latitude, longitude *float64
	if loc := entry.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		latitude, longitude = &lat, &lon
	}

	return HistoryEntryDTO{
		ID:         entry.ID().Bytes(),
		ParcelID:   entry.ParcelID().Bytes(),
		Status:     int(entry.Status()),
		Latitude:   latitude,
		Longitude:  longitude,
		Notes:      entry.Notes(),
		RecordedAt: entry.RecordedAt(),
	}
}

// toDomain converts a database DTO to a history entry.
func toDomain(dto HistoryEntryDTO) (*parcel.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return parcel.RestoreHistoryEntry(
		id,
		parcelID,
		parcel.Status(dto.Status),
		location,
		dto.Notes,
		dto.RecordedAt,
	)
}
