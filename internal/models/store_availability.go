package models

import "time"

// StoreAvailability is one recurring weekly open-hours window.
type StoreAvailability struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StoreID uint `gorm:"not null;index" json:"store_id"`

	Weekday   string `gorm:"size:10;not null" json:"weekday"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoreAvailability) TableName() string {
	return "store_availabilities"
}
