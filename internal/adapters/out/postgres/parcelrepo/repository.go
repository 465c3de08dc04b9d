package parcelrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
)

const conflictMessage = "the package was modified concurrently, retry the update"

// GormParcelRepository implements ParcelRepository using GORM.
//
// Writes are guarded by the aggregate's version column: Update only matches
// the row when the stored version equals the version the aggregate was loaded
// with, and bumps it on success. A concurrent writer therefore surfaces as a
// ConflictError instead of a silent lost update.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database. Fresh rows start at version 1.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel under its optimistic version guard.
// Returns a ConflictError when the row changed since the aggregate was loaded.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(conflictMessage)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a parcel by its external tracking number.
func (r *GormParcelRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber string,
) (*parcel.Parcel, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("tracking number")
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDeliveredWithoutLocation retrieves delivered parcels with no recorded
// coordinates, oldest deliveries first so the backfill job drains the backlog
// in order.
func (r *GormParcelRepository) GetDeliveredWithoutLocation(
	ctx context.Context,
	limit int,
) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND latitude IS NULL", parcel.StatusDelivered).
		Order("delivered_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
