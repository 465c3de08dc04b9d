// Package statusrepo provides persistence for the status reference vocabulary.
// Definitions are seeded by migrations and read-only from the application's
// point of view.
package statusrepo

import (
	"github.com/google/uuid"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// StatusDefinitionDTO represents the database structure for status definitions.
type StatusDefinitionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
}

// TableName specifies the database table name for status definitions.
func (StatusDefinitionDTO) TableName() string {
	return "status_definitions"
}

// toDomain converts a database DTO to a status definition.
func toDomain(dto StatusDefinitionDTO) (*parcel.StatusDefinition, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return parcel.NewStatusDefinition(id, dto.Name, dto.Description)
}
