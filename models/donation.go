package models

import "gorm.io/gorm"

// DonationStatus is the closed set of donation states. A donation is
// created pending and transitions exactly once, to completed or failed.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

type Donation struct {
	gorm.Model
	DonorID        uint           `gorm:"index;not null" json:"donor_id"`
	Donor          User           `gorm:"foreignKey:DonorID" json:"-"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	Organization   Organization   `json:"-"`
	CampaignID     *uint          `gorm:"index" json:"campaign_id"`
	Campaign       *Campaign      `json:"-"`
	CategoryID     *uint          `json:"category_id"`
	Amount         float64        `gorm:"not null" json:"amount"`
	Status         DonationStatus `gorm:"type:varchar(20);default:pending" json:"status"`
}
