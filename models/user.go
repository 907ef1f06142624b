package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. A user's role is fixed at
// creation and never changes afterwards.
type Role string

const (
	RoleDonor Role = "donor"
	RoleOrg   Role = "org"
	RoleAdmin Role = "admin"
)

// CanDonate reports whether the role is allowed to create donations
// and complete payments.
func (r Role) CanDonate() bool {
	return r == RoleDonor
}

// CanManageCampaigns reports whether the role is allowed to publish
// campaigns and reports.
func (r Role) CanManageCampaigns() bool {
	return r == RoleOrg
}

type User struct {
	gorm.Model
	Phone       string     `gorm:"uniqueIndex;not null" json:"phone"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Password    string     `json:"-"`
	Role        Role       `gorm:"type:varchar(20);not null;default:donor" json:"role"`
	IsActive    bool       `gorm:"default:false" json:"is_active"`
	LastLoginAt *time.Time `json:"-"`
}
