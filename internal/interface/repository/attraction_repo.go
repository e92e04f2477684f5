package repository

import (
	"context"
	"time"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormAttractionRepository implements the AttractionRepository interface
type GormAttractionRepository struct {
	db *gorm.DB
}

// NewGormAttractionRepository creates a new GORM attraction repository
func NewGormAttractionRepository(db *gorm.DB) repository.AttractionRepository {
	return &GormAttractionRepository{
		db: db,
	}
}

// Upsert creates or updates an attraction keyed by external id
func (r *GormAttractionRepository) Upsert(ctx context.Context, attraction *entity.Attraction) (string, bool, error) {
	var existing entity.Attraction
	err := r.db.WithContext(ctx).Where("external_id = ?", attraction.ExternalID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, errors.Wrapf(err, "find attraction %s", attraction.ExternalID)
		}
		attraction.ID = uuid.NewString()
		if err := r.db.WithContext(ctx).Create(attraction).Error; err != nil {
			return "", false, errors.Wrapf(err, "create attraction %s", attraction.ExternalID)
		}
		return attraction.ID, true, nil
	}

	attraction.ID = existing.ID
	attraction.CreatedAt = existing.CreatedAt
	// The static children listing carries no status; keep the last live one.
	if attraction.Status == nil {
		attraction.Status = existing.Status
	}
	if err := r.db.WithContext(ctx).Save(attraction).Error; err != nil {
		return "", false, errors.Wrapf(err, "update attraction %s", attraction.ExternalID)
	}
	return attraction.ID, false, nil
}

// FindByExternalID finds an attraction by its upstream id
func (r *GormAttractionRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Attraction, error) {
	var attraction entity.Attraction
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&attraction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attraction, nil
}

// UpdateStatus updates the live operating status and bumps LastSynced
func (r *GormAttractionRepository) UpdateStatus(ctx context.Context, id string, status entity.OperatingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.Attraction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"last_synced": time.Now(),
		}).Error
}

// CountByStatus counts the park's active attractions by operating state
func (r *GormAttractionRepository) CountByStatus(ctx context.Context, parkID string) (int, int, error) {
	var open, closed int64
	err := r.db.WithContext(ctx).
		Model(&entity.Attraction{}).
		Where("park_id = ? AND is_active = ? AND status = ?", parkID, true, entity.StatusOperating).
		Count(&open).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&entity.Attraction{}).
		Where("park_id = ? AND is_active = ? AND status IS NOT NULL AND status <> ?", parkID, true, entity.StatusOperating).
		Count(&closed).Error
	if err != nil {
		return 0, 0, err
	}
	return int(open), int(closed), nil
}

// DeactivateMissingForPark marks the park's attractions absent from the seen
// set as inactive
func (r *GormAttractionRepository) DeactivateMissingForPark(ctx context.Context, parkID string, seenExternalIDs []string) error {
	// An empty seen set would deactivate every row of the park; skip instead.
	if len(seenExternalIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Attraction{}).
		Where("park_id = ? AND external_id NOT IN ?", parkID, seenExternalIDs).
		Update("is_active", false).Error
}
