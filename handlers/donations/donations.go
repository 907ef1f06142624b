package donations

import (
	"log"
	"net/http"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createDonationRequest struct {
	Amount         float64 `json:"amount"`
	OrganizationID uint    `json:"organization_id"`
	CampaignID     *uint   `json:"campaign_id"`
	CategoryID     *uint   `json:"category_id"`
}

// CreateDonation records a pending donation together with its pending
// stub payment. No payment gateway is contacted; settlement happens
// through the stub completion endpoint.
func CreateDonation(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input createDonationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than 0."})
		return
	}
	if input.OrganizationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization is required."})
		return
	}

	var organization models.Organization
	if err := utils.DB.First(&organization, input.OrganizationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization not found."})
		return
	}

	if input.CampaignID != nil {
		var campaign models.Campaign
		if err := utils.DB.First(&campaign, *input.CampaignID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign not found."})
			return
		}
	}
	if input.CategoryID != nil {
		var category models.Category
		if err := utils.DB.First(&category, *input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found."})
			return
		}
	}

	donation := models.Donation{
		DonorID:        user.ID,
		OrganizationID: input.OrganizationID,
		CampaignID:     input.CampaignID,
		CategoryID:     input.CategoryID,
		Amount:         input.Amount,
		Status:         models.DonationPending,
	}
	payment := models.Payment{
		DonorID:   user.ID,
		Amount:    input.Amount,
		Provider:  models.PaymentProviderStub,
		Reference: uuid.NewString(),
		Status:    models.PaymentPending,
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}
		payment.DonationID = donation.ID
		return tx.Create(&payment).Error
	})
	if err != nil {
		log.Printf("Failed to create donation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":              donation.ID,
		"amount":          donation.Amount,
		"status":          donation.Status,
		"organization_id": donation.OrganizationID,
		"campaign_id":     donation.CampaignID,
		"category_id":     donation.CategoryID,
		"payment_id":      payment.ID,
	})
}

// MyDonations lists the donor's donations newest first with summary
// fields over the whole set.
func MyDonations(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var donationsList []models.Donation
	if err := utils.DB.Where("donor_id = ?", user.ID).
		Order("created_at DESC").
		Find(&donationsList).Error; err != nil {
		log.Printf("Failed to list donations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list donations."})
		return
	}

	var totalAmount float64
	organizations := make(map[uint]struct{})
	for _, d := range donationsList {
		totalAmount += d.Amount
		organizations[d.OrganizationID] = struct{}{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_amount":        totalAmount,
		"organizations_count": len(organizations),
		"results":             donationsList,
	})
}
