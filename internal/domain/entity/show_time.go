package entity

import "time"

// ShowTime is one scheduled performance. Rows are fully replaced per
// attraction on every sync pass; uniqueness on attraction+start+end guards
// against duplicate entries from overlapping passes.
type ShowTime struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	AttractionID string    `gorm:"column:attraction_id;uniqueIndex:uidx_show_times_attr_start_end,priority:1;index:idx_show_times_attr_start,priority:1"`
	StartTime    time.Time `gorm:"column:start_time;uniqueIndex:uidx_show_times_attr_start_end,priority:2;index:idx_show_times_attr_start,priority:2"`
	EndTime      time.Time `gorm:"column:end_time;uniqueIndex:uidx_show_times_attr_start_end,priority:3"`
	ShowType     ShowType  `gorm:"column:show_type"`
	IsActive     bool      `gorm:"column:is_active;default:false"`
	LastSynced   time.Time `gorm:"column:last_synced"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name
func (ShowTime) TableName() string {
	return "show_times"
}
