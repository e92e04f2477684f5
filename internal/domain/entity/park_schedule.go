package entity

import "time"

// ParkSchedule is one operating-calendar entry, unique per park and date.
// Opening and closing times are wall-clock strings as printed upstream,
// never offset-adjusted.
type ParkSchedule struct {
	ID           string       `gorm:"type:uuid;primaryKey"`
	ParkID       string       `gorm:"column:park_id;uniqueIndex:uidx_park_schedules_park_date,priority:1"`
	Date         time.Time    `gorm:"column:date;type:date;uniqueIndex:uidx_park_schedules_park_date,priority:2"`
	OpeningTime  string       `gorm:"column:opening_time"`
	ClosingTime  string       `gorm:"column:closing_time"`
	ScheduleType ScheduleType `gorm:"column:schedule_type"`
	Description  string       `gorm:"column:description"`
	IsSpecial    bool         `gorm:"column:is_special;default:false"`
	LastSynced   time.Time    `gorm:"column:last_synced"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name
func (ParkSchedule) TableName() string {
	return "park_schedules"
}
