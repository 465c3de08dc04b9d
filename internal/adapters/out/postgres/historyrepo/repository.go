package historyrepo

import (
	"context"

	"gorm.io/gorm"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// GormHistoryRepository implements HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Add appends a history entry for a parcel.
func (r *GormHistoryRepository) Add(ctx context.Context, entry *parcel.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByParcel retrieves all history entries for a parcel, oldest first.
func (r *GormHistoryRepository) GetByParcel(
	ctx context.Context,
	parcelID kernel.UUID,
) ([]*parcel.HistoryEntry, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*parcel.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
