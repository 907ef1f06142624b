package models

import "gorm.io/gorm"

// VerificationStatus tracks the moderation state of an organization.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type Organization struct {
	gorm.Model
	UserID         uint               `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User               `json:"-"`
	Name           string             `gorm:"not null" json:"name"`
	Description    string             `json:"description"`
	LogoURL        string             `json:"logo_url"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	VerifiedStatus VerificationStatus `gorm:"type:varchar(20);default:pending" json:"verified_status"`
	// TotalRaised is a cached aggregate, incremented as payments complete.
	TotalRaised float64 `gorm:"default:0" json:"total_raised"`
}
