package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// PurchaseRepository defines the interface for purchase persistence.
type PurchaseRepository interface {
	Upsert(ctx context.Context, purchase *entity.Purchase) (id string, created bool, err error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.Purchase, error)
}
