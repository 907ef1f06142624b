package models

import "gorm.io/gorm"

type DonorProfile struct {
	gorm.Model
	UserID               uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User                 User   `json:"-"`
	AvatarURL            string `json:"avatar_url"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`
	Rank                 string `json:"rank"`
	ImpactPoints         uint   `gorm:"default:0" json:"impact_points"`
}
