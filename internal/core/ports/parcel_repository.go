package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Provides methods for storing, retrieving, and querying parcels.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// The write is guarded by the aggregate's version: a stale version
	// surfaces as a ConflictError instead of silently overwriting a
	// concurrent update.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNumber retrieves a parcel by its external tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error)

	// GetDeliveredWithoutLocation retrieves delivered parcels that have no
	// recorded coordinates. Used by the location backfill job.
	GetDeliveredWithoutLocation(ctx context.Context, limit int) ([]*parcel.Parcel, error)
}
