package donors

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DonorProfile returns the donor's profile with embedded user fields.
func DonorProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var profile models.DonorProfile
	if err := utils.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor profile not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"phone":     user.Phone,
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.Role,
		},
		"avatar_url":            profile.AvatarURL,
		"notifications_enabled": profile.NotificationsEnabled,
		"rank":                  profile.Rank,
		"impact_points":         profile.ImpactPoints,
	})
}

// BankDetails returns the donor's bank details, creating an empty
// record on first access.
func BankDetails(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	details, err := getOrCreateBankDetails(user.ID)
	if err != nil {
		log.Printf("Failed to load bank details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bank details."})
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateBankDetails replaces the donor's bank details.
func UpdateBankDetails(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		BankName      string `json:"bank_name"`
		AccountNumber string `json:"account_number"`
		AccountHolder string `json:"account_holder"`
		ExtraInfo     string `json:"extra_info"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	details, err := getOrCreateBankDetails(user.ID)
	if err != nil {
		log.Printf("Failed to load bank details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bank details."})
		return
	}

	if err := utils.DB.Model(&details).Updates(map[string]interface{}{
		"bank_name":      input.BankName,
		"account_number": input.AccountNumber,
		"account_holder": input.AccountHolder,
		"extra_info":     input.ExtraInfo,
	}).Error; err != nil {
		log.Printf("Failed to update bank details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bank details."})
		return
	}

	c.JSON(http.StatusOK, details)
}

func getOrCreateBankDetails(donorID uint) (models.DonorBankDetails, error) {
	var details models.DonorBankDetails
	err := utils.DB.Where("donor_id = ?", donorID).First(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		details = models.DonorBankDetails{DonorID: donorID}
		err = utils.DB.Create(&details).Error
	}
	return details, err
}

// ListRecurringDonations lists the donor's recurring donation records.
func ListRecurringDonations(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var recurring []models.RecurringDonation
	if err := utils.DB.Where("donor_id = ?", user.ID).Find(&recurring).Error; err != nil {
		log.Printf("Failed to list recurring donations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recurring donations."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": recurring})
}

// CreateRecurringDonation records a standing donation instruction. No
// scheduler executes it; the record only drives client reminders.
func CreateRecurringDonation(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		OrganizationID uint    `json:"organization_id"`
		Amount         float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than 0."})
		return
	}

	var organization models.Organization
	if err := utils.DB.First(&organization, input.OrganizationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization not found."})
		return
	}

	recurring := models.RecurringDonation{
		DonorID:        user.ID,
		OrganizationID: input.OrganizationID,
		Amount:         input.Amount,
		Interval:       models.IntervalDaily,
		IsActive:       true,
	}
	if err := utils.DB.Create(&recurring).Error; err != nil {
		log.Printf("Failed to create recurring donation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recurring donation."})
		return
	}

	c.JSON(http.StatusCreated, recurring)
}

// UpdateRecurringDonation toggles or adjusts one of the donor's own
// recurring donation records.
func UpdateRecurringDonation(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	recurringID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recurring donation id."})
		return
	}

	var recurring models.RecurringDonation
	if err := utils.DB.Where("id = ? AND donor_id = ?", recurringID, user.ID).
		First(&recurring).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurring donation not found."})
		return
	}

	var input struct {
		Amount   *float64 `json:"amount"`
		IsActive *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := make(map[string]interface{})
	if input.Amount != nil {
		if *input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than 0."})
			return
		}
		updates["amount"] = *input.Amount
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&recurring).Updates(updates).Error; err != nil {
			log.Printf("Failed to update recurring donation: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recurring donation."})
			return
		}
	}

	c.JSON(http.StatusOK, recurring)
}
