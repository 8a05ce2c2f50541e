package models

import "time"

type Store struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Location     string `gorm:"size:255;not null" json:"location"`
	ContactEmail string `gorm:"size:100;not null" json:"contact_email"`
	PhoneNumber  string `gorm:"size:20;not null" json:"phone_number"`
	Timezone     string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
