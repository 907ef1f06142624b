package models

import "gorm.io/gorm"

type DonorBankDetails struct {
	gorm.Model
	DonorID       uint   `gorm:"uniqueIndex;not null" json:"-"`
	Donor         User   `gorm:"foreignKey:DonorID" json:"-"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
	ExtraInfo     string `json:"extra_info"`
}
