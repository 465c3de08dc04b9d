package statusrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
)

// GormStatusDefinitionRepository implements StatusDefinitionRepository using GORM.
type GormStatusDefinitionRepository struct {
	db *gorm.DB
}

// NewGormStatusDefinitionRepository creates a new GORM status definition repository.
func NewGormStatusDefinitionRepository(db *gorm.DB) *GormStatusDefinitionRepository {
	return &GormStatusDefinitionRepository{db: db}
}

// Get retrieves a status definition by ID.
func (r *GormStatusDefinitionRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*parcel.StatusDefinition, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StatusDefinitionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("status definition", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByName retrieves a status definition by its unique name.
func (r *GormStatusDefinitionRepository) GetByName(
	ctx context.Context,
	name string,
) (*parcel.StatusDefinition, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("status definition name")
	}

	var dto StatusDefinitionDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("status definition", name)
		}
		return nil, err
	}

	return toDomain(dto)
}
