package entity

import "time"

// Attraction is any child entity of a park: rides, shows, shops, and so on.
// Status is nullable because the static children listing carries no live
// status; it is backfilled from live data when available.
type Attraction struct {
	ID         string           `gorm:"type:uuid;primaryKey"`
	ExternalID string           `gorm:"column:external_id;uniqueIndex"`
	Name       string           `gorm:"not null"`
	Slug       string           `gorm:"column:slug"`
	EntityType EntityType       `gorm:"column:entity_type;index:idx_attractions_park_type,priority:2"`
	Latitude   *float64         `gorm:"type:decimal(10,8)"`
	Longitude  *float64         `gorm:"type:decimal(11,8)"`
	Status     *OperatingStatus `gorm:"column:status"`

	ParkID     string    `gorm:"column:park_id;index:idx_attractions_park_type,priority:1"`
	IsActive   bool      `gorm:"column:is_active;default:false"`
	LastSynced time.Time `gorm:"column:last_synced"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name
func (Attraction) TableName() string {
	return "attractions"
}
