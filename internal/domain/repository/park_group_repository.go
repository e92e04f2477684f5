package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// ParkGroupRepository defines the interface for park group persistence.
// Upsert keys on ExternalID and reports whether a new row was created, so
// callers can observe "reuse existing id vs. create new" directly.
type ParkGroupRepository interface {
	Upsert(ctx context.Context, group *entity.ParkGroup) (id string, created bool, err error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.ParkGroup, error)
	// DeactivateMissing marks rows whose external id is not in the seen set
	// as inactive. An empty seen set is a no-op, never a full deactivation.
	DeactivateMissing(ctx context.Context, seenExternalIDs []string) error
}
