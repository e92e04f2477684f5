package entity

import "time"

// Park is a single theme park. Location fields beyond the raw coordinates
// are filled in by the geocoding resolver, not by the upstream API.
type Park struct {
	ID         string   `gorm:"type:uuid;primaryKey"`
	ExternalID string   `gorm:"column:external_id;uniqueIndex"`
	Name       string   `gorm:"not null;index:idx_parks_group_name,priority:2"`
	Slug       string   `gorm:"column:slug"`
	Timezone   string   `gorm:"not null"`
	Latitude   *float64 `gorm:"type:decimal(10,8)"`
	Longitude  *float64 `gorm:"type:decimal(11,8)"`

	// Resolved location, best effort.
	Country     string `gorm:"column:country"`
	City        string `gorm:"column:city"`
	Continent   string `gorm:"column:continent"`
	CountryCode string `gorm:"column:country_code;size:2"`

	// Free-form mirror of the upstream schedule type of the day.
	OperatingStatus string `gorm:"column:operating_status"`
	IsAtCapacity    bool   `gorm:"column:is_at_capacity;default:false"`

	ParkGroupID string    `gorm:"column:park_group_id;index:idx_parks_group_name,priority:1"`
	IsActive    bool      `gorm:"column:is_active;default:false"`
	LastSynced  time.Time `gorm:"column:last_synced"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name
func (Park) TableName() string {
	return "parks"
}
