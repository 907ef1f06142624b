package models

import "gorm.io/gorm"

// Report is a spending report published by an organization.
type Report struct {
	gorm.Model
	OrganizationID uint         `gorm:"index;not null" json:"organization_id"`
	Organization   Organization `json:"-"`
	CampaignID     *uint        `json:"campaign_id"`
	Campaign       *Campaign    `json:"-"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `json:"description"`
	AmountSpent    float64      `gorm:"not null" json:"amount_spent"`
	FileURL        string       `json:"file_url"`
}
