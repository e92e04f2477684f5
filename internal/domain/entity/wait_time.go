package entity

import "time"

// WaitTime is one immutable wait-time observation. Exactly one row per
// (attraction, queue type) carries IsActive=true: the most recent one.
type WaitTime struct {
	ID              string          `gorm:"type:uuid;primaryKey"`
	AttractionID    string          `gorm:"column:attraction_id;index:idx_wait_times_attr_queue_recorded,priority:1;index:idx_wait_times_current,priority:1"`
	WaitTimeMinutes *int            `gorm:"column:wait_time_minutes"`
	QueueType       QueueType       `gorm:"column:queue_type;default:STANDBY;index:idx_wait_times_attr_queue_recorded,priority:2;index:idx_wait_times_current,priority:2"`
	Status          OperatingStatus `gorm:"column:status;index:idx_wait_times_status"`
	IsActive        bool            `gorm:"column:is_active;default:false;index:idx_wait_times_is_active;index:idx_wait_times_current,priority:3"`
	RecordedAt      time.Time       `gorm:"column:recorded_at;index:idx_wait_times_recorded_at;index:idx_wait_times_attr_queue_recorded,priority:3;index:idx_wait_times_current,priority:4"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default table name
func (WaitTime) TableName() string {
	return "wait_times"
}
