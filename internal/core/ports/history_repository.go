package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// HistoryRepository defines the persistence contract for the parcel audit
// trail. The trail is append-only: entries written by the core are never
// updated or deleted through this port.
type HistoryRepository interface {
	// Add appends a history entry for a parcel.
	Add(ctx context.Context, entry *parcel.HistoryEntry) error

	// GetByParcel retrieves all history entries for a parcel,
	// ordered by recording time ascending.
	GetByParcel(ctx context.Context, parcelID kernel.UUID) ([]*parcel.HistoryEntry, error)
}
