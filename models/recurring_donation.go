package models

import "gorm.io/gorm"

// RecurringInterval is the closed set of recurrence intervals.
type RecurringInterval string

const (
	IntervalDaily RecurringInterval = "daily"
)

// RecurringDonation is a standing instruction recorded for a donor. No
// scheduler executes these; they are managed records only.
type RecurringDonation struct {
	gorm.Model
	DonorID        uint              `gorm:"index;not null" json:"donor_id"`
	Donor          User              `gorm:"foreignKey:DonorID" json:"-"`
	OrganizationID uint              `gorm:"index;not null" json:"organization_id"`
	Organization   Organization      `json:"-"`
	Amount         float64           `gorm:"not null" json:"amount"`
	Interval       RecurringInterval `gorm:"type:varchar(20);default:daily" json:"interval"`
	IsActive       bool              `gorm:"default:true" json:"is_active"`
}
