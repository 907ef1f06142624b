package migrations

import (
	"log"

	"donation-platform-server/models"
	"donation-platform-server/utils"
)

// Migrate brings the schema up to date for every model in the platform.
func Migrate() {
	err := utils.DB.AutoMigrate(
		&models.User{},
		&models.DonorProfile{},
		&models.Organization{},
		&models.Category{},
		&models.Campaign{},
		&models.Donation{},
		&models.Payment{},
		&models.Notification{},
		&models.OTPCode{},
		&models.Report{},
		&models.DonorBankDetails{},
		&models.RecurringDonation{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
