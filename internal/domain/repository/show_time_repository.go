package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// ShowTimeRepository defines the interface for show-time persistence.
// Show times are the one category that is hard-deleted: each sync pass fully
// replaces an attraction's rows with the latest fetch.
type ShowTimeRepository interface {
	ReplaceForAttraction(ctx context.Context, attractionID string, times []entity.ShowTime) error
	FindByAttraction(ctx context.Context, attractionID string) ([]entity.ShowTime, error)
}
