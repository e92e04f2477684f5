package entity

import "time"

// ParkGroup is an upstream destination (resort) owning zero or more parks.
type ParkGroup struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	ExternalID string    `gorm:"column:external_id;uniqueIndex"`
	Name       string    `gorm:"not null"`
	Slug       string    `gorm:"column:slug"`
	IsActive   bool      `gorm:"column:is_active;default:false"`
	LastSynced time.Time `gorm:"column:last_synced"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name
func (ParkGroup) TableName() string {
	return "park_groups"
}
