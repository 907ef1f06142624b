package models

import "gorm.io/gorm"

// Notification rows are written once by lifecycle transitions; only the
// read flag ever changes afterwards.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	User    User   `json:"-"`
	Title   string `json:"title"`
	Message string `json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}
