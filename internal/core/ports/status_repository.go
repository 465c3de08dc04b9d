package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// StatusDefinitionRepository defines the persistence contract for the status
// reference vocabulary. Definitions are immutable from this core's point of
// view; only reads are exposed.
type StatusDefinitionRepository interface {
	// Get retrieves a status definition by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.StatusDefinition, error)

	// GetByName retrieves a status definition by its unique name.
	GetByName(ctx context.Context, name string) (*parcel.StatusDefinition, error)
}
