// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"github.com/google/uuid"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Maps parcel domain entities to relational database tables with indexes for
// the courier workload listing and the tracking-number lookup.
//
// Latitude and longitude are separate nullable columns but are only ever
// written as a pair; the domain's GeoPoint guarantees that.
type ParcelDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber string     `gorm:"uniqueIndex;not null"`
	SenderID       uuid.UUID  `gorm:"type:uuid;index"`
	RecipientID    uuid.UUID  `gorm:"type:uuid;index"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`
	Status         int        `gorm:"index"`
	Notes          *string
	Latitude       *float64
	Longitude      *float64
	Destination    AddressDTO `gorm:"embedded;embeddedPrefix:dest_"`
	SubmittedAt    time.Time
	DeliveredAt    *time.Time
	Version        int `gorm:"not null"`
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// AddressDTO represents the embedded destination address within the parcel table.
type AddressDTO struct {
	Street  string
	City    string
	ZipCode string
	Country string
}

// fromDomain converts a parcel domain aggregate to its database representation.
// The version column is not set here; Add and Update decide it.
func fromDomain(p *parcel.Parcel) ParcelDTO {
	var courierID *uuid.UUID
	if id := p.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var latitude, longitude *float64
	if loc := p.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		latitude, longitude = &lat, &lon
	}

	destination := p.Destination()

	return ParcelDTO{
		ID:             p.ID().Bytes(),
		TrackingNumber: p.TrackingNumber(),
		SenderID:       p.Sender().Bytes(),
		RecipientID:    p.Recipient().Bytes(),
		CourierID:      courierID,
		Status:         int(p.Status()),
		Notes:          p.Notes(),
		Latitude:       latitude,
		Longitude:      longitude,
		Destination: AddressDTO{
			Street:  destination.Street(),
			City:    destination.City(),
			ZipCode: destination.ZipCode(),
			Country: destination.Country(),
		},
		SubmittedAt: p.SubmittedAt(),
		DeliveredAt: p.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate using RestoreParcel, so corrupt rows
// surface as errors instead of invalid aggregates.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingNumber,
		senderID,
		recipientID,
		courierID,
		parcel.Status(dto.Status),
		dto.Notes,
		location,
		kernel.NewAddress(
			dto.Destination.Street,
			dto.Destination.City,
			dto.Destination.ZipCode,
			dto.Destination.Country,
		),
		dto.SubmittedAt,
		dto.DeliveredAt,
		dto.Version,
	)
}
