package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormParkGroupRepository implements the ParkGroupRepository interface
type GormParkGroupRepository struct {
	db *gorm.DB
}

// NewGormParkGroupRepository creates a new GORM park group repository
func NewGormParkGroupRepository(db *gorm.DB) repository.ParkGroupRepository {
	return &GormParkGroupRepository{
		db: db,
	}
}

// Upsert creates or updates a park group keyed by external id
func (r *GormParkGroupRepository) Upsert(ctx context.Context, group *entity.ParkGroup) (string, bool, error) {
	var existing entity.ParkGroup
	err := r.db.WithContext(ctx).Where("external_id = ?", group.ExternalID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, errors.Wrapf(err, "find park group %s", group.ExternalID)
		}
		group.ID = uuid.NewString()
		if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
			return "", false, errors.Wrapf(err, "create park group %s", group.ExternalID)
		}
		return group.ID, true, nil
	}

	group.ID = existing.ID
	group.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return "", false, errors.Wrapf(err, "update park group %s", group.ExternalID)
	}
	return group.ID, false, nil
}

// FindByExternalID finds a park group by its upstream id
func (r *GormParkGroupRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.ParkGroup, error) {
	var group entity.ParkGroup
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// DeactivateMissing marks park groups absent from the seen set as inactive
func (r *GormParkGroupRepository) DeactivateMissing(ctx context.Context, seenExternalIDs []string) error {
	// An empty seen set would deactivate every row; skip instead.
	if len(seenExternalIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.ParkGroup{}).
		Where("external_id NOT IN ?", seenExternalIDs).
		Update("is_active", false).Error
}
