package models

import (
	"time"

	"gorm.io/gorm"
)

// CampaignStatus is the closed set of campaign lifecycle states.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignPaused    CampaignStatus = "paused"
)

type Campaign struct {
	gorm.Model
	OrganizationID uint         `gorm:"index;not null" json:"organization_id"`
	Organization   Organization `json:"-"`
	CategoryID     *uint        `json:"category_id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `json:"description"`
	GoalAmount     float64      `gorm:"not null" json:"goal_amount"`
	// RaisedAmount and DonorsCount are cached aggregates, updated as
	// donations complete.
	RaisedAmount float64        `gorm:"default:0" json:"raised_amount"`
	DonorsCount  uint           `gorm:"default:0" json:"donors_count"`
	Status       CampaignStatus `gorm:"type:varchar(20);default:active" json:"status"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      *time.Time     `json:"end_date"`
	ImageURL     string         `json:"image_url"`
}
