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

// GormParkRepository implements the ParkRepository interface
type GormParkRepository struct {
	db *gorm.DB
}

// NewGormParkRepository creates a new GORM park repository
func NewGormParkRepository(db *gorm.DB) repository.ParkRepository {
	return &GormParkRepository{
		db: db,
	}
}

// Upsert creates or updates a park keyed by external id
func (r *GormParkRepository) Upsert(ctx context.Context, park *entity.Park) (string, bool, error) {
	var existing entity.Park
	err := r.db.WithContext(ctx).Where("external_id = ?", park.ExternalID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, errors.Wrapf(err, "find park %s", park.ExternalID)
		}
		park.ID = uuid.NewString()
		if err := r.db.WithContext(ctx).Create(park).Error; err != nil {
			return "", false, errors.Wrapf(err, "create park %s", park.ExternalID)
		}
		return park.ID, true, nil
	}

	park.ID = existing.ID
	park.CreatedAt = existing.CreatedAt
	// Resolved location survives a re-sync; the upstream never provides it.
	if park.Country == "" {
		park.Country = existing.Country
	}
	if park.City == "" {
		park.City = existing.City
	}
	if park.Continent == "" {
		park.Continent = existing.Continent
	}
	if park.CountryCode == "" {
		park.CountryCode = existing.CountryCode
	}
	if err := r.db.WithContext(ctx).Save(park).Error; err != nil {
		return "", false, errors.Wrapf(err, "update park %s", park.ExternalID)
	}
	return park.ID, false, nil
}

// FindAll returns all parks
func (r *GormParkRepository) FindAll(ctx context.Context) ([]entity.Park, error) {
	var parks []entity.Park
	if err := r.db.WithContext(ctx).Find(&parks).Error; err != nil {
		return nil, err
	}
	return parks, nil
}

// FindByExternalID finds a park by its upstream id
func (r *GormParkRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Park, error) {
	var park entity.Park
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&park).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &park, nil
}

// Save persists all fields of an existing park row
func (r *GormParkRepository) Save(ctx context.Context, park *entity.Park) error {
	return r.db.WithContext(ctx).Save(park).Error
}

// UpdateOperatingStatus updates the live status fields and bumps LastSynced
func (r *GormParkRepository) UpdateOperatingStatus(ctx context.Context, id string, status string, atCapacity bool) error {
	return r.db.WithContext(ctx).
		Model(&entity.Park{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"operating_status": status,
			"is_at_capacity":   atCapacity,
			"last_synced":      time.Now(),
		}).Error
}

// FindNeedingLocation returns parks with coordinates but incomplete location
func (r *GormParkRepository) FindNeedingLocation(ctx context.Context) ([]entity.Park, error) {
	var parks []entity.Park
	err := r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("country = '' OR city = '' OR continent = ''").
		Find(&parks).Error
	if err != nil {
		return nil, err
	}
	return parks, nil
}

// DeactivateMissing marks parks absent from the seen set as inactive
func (r *GormParkRepository) DeactivateMissing(ctx context.Context, seenExternalIDs []string) error {
	// An empty seen set would deactivate every row; skip instead.
	if len(seenExternalIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Park{}).
		Where("external_id NOT IN ?", seenExternalIDs).
		Update("is_active", false).Error
}
