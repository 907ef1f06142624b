package reports

import (
	"log"
	"net/http"
	"strconv"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
)

func ownOrganization(c *gin.Context) (models.Organization, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return models.Organization{}, false
	}

	var organization models.Organization
	if err := utils.DB.Where("user_id = ?", user.ID).First(&organization).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User has no organization"})
		return models.Organization{}, false
	}
	return organization, true
}

// CreateReport publishes a spending report for the authenticated
// organization. Accepts multipart form data with an optional file.
func CreateReport(c *gin.Context) {
	organization, ok := ownOrganization(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	amountSpent, err := strconv.ParseFloat(c.PostForm("amount_spent"), 64)
	if err != nil || amountSpent <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount spent must be greater than 0."})
		return
	}
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required."})
		return
	}

	report := models.Report{
		OrganizationID: organization.ID,
		Title:          title,
		Description:    description,
		AmountSpent:    amountSpent,
	}

	if campaignID := c.PostForm("campaign_id"); campaignID != "" {
		id, err := strconv.ParseUint(campaignID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign id."})
			return
		}
		var campaign models.Campaign
		if err := utils.DB.Where("id = ? AND organization_id = ?", id, organization.ID).
			First(&campaign).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign not found."})
			return
		}
		report.CampaignID = &campaign.ID
	}

	if file, err := c.FormFile("file"); err == nil {
		url, err := utils.SaveUploadedFile(c, file, "reports")
		if err != nil {
			log.Printf("Failed to store report file: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file."})
			return
		}
		report.FileURL = url
	}

	if err := utils.DB.Create(&report).Error; err != nil {
		log.Printf("Failed to create report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report."})
		return
	}

	c.JSON(http.StatusCreated, report)
}

// MyReports lists the authenticated organization's reports, newest
// first.
func MyReports(c *gin.Context) {
	organization, ok := ownOrganization(c)
	if !ok {
		return
	}

	var reportsList []models.Report
	if err := utils.DB.Where("organization_id = ?", organization.ID).
		Order("created_at DESC").
		Find(&reportsList).Error; err != nil {
		log.Printf("Failed to list reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": reportsList})
}
