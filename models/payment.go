package models

import "gorm.io/gorm"

// PaymentStatus is the closed set of settlement states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentProviderStub is the placeholder provider tag. No external
// gateway is contacted for payments tagged with it.
const PaymentProviderStub = "stub"

type Payment struct {
	gorm.Model
	DonorID    uint     `gorm:"index;not null" json:"donor_id"`
	Donor      User     `gorm:"foreignKey:DonorID" json:"-"`
	DonationID uint     `gorm:"uniqueIndex;not null" json:"donation_id"`
	Donation   Donation `json:"-"`
	Amount     float64  `gorm:"not null" json:"amount"`
	Provider   string   `gorm:"type:varchar(50);default:stub" json:"provider"`
	// Reference is the provider-side identifier of the settlement attempt.
	Reference string        `gorm:"uniqueIndex;type:varchar(64)" json:"reference"`
	Status    PaymentStatus `gorm:"type:varchar(20);default:pending" json:"status"`
}
