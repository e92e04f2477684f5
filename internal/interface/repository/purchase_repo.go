package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements the PurchaseRepository interface
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GORM purchase repository
func NewGormPurchaseRepository(db *gorm.DB) repository.PurchaseRepository {
	return &GormPurchaseRepository{
		db: db,
	}
}

// Upsert creates or updates a purchase keyed by external id
func (r *GormPurchaseRepository) Upsert(ctx context.Context, purchase *entity.Purchase) (string, bool, error) {
	var existing entity.Purchase
	err := r.db.WithContext(ctx).Where("external_id = ?", purchase.ExternalID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, errors.Wrapf(err, "find purchase %s", purchase.ExternalID)
		}
		purchase.ID = uuid.NewString()
		if err := r.db.WithContext(ctx).Create(purchase).Error; err != nil {
			return "", false, errors.Wrapf(err, "create purchase %s", purchase.ExternalID)
		}
		return purchase.ID, true, nil
	}

	purchase.ID = existing.ID
	purchase.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(purchase).Error; err != nil {
		return "", false, errors.Wrapf(err, "update purchase %s", purchase.ExternalID)
	}
	return purchase.ID, false, nil
}

// FindByExternalID finds a purchase by its upstream id
func (r *GormPurchaseRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}
