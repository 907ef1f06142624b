package campaigns

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
)

// ListCampaigns is the public catalog listing. Supports status and
// organization_id filters, newest first.
func ListCampaigns(c *gin.Context) {
	query := utils.DB.Model(&models.Campaign{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if orgID := c.Query("organization_id"); orgID != "" {
		query = query.Where("organization_id = ?", orgID)
	}

	var campaignsList []models.Campaign
	if err := query.Order("created_at DESC").Find(&campaignsList).Error; err != nil {
		log.Printf("Failed to list campaigns: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": campaignsList})
}

// ListCategories is the public category listing.
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := utils.DB.Order("name").Find(&categories).Error; err != nil {
		log.Printf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": categories})
}

// ownOrganization resolves the organization owned by the authenticated
// user, or writes the error response and returns false.
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

// CreateCampaign publishes a campaign for the authenticated
// organization. Accepts multipart form data so a banner image can be
// attached.
func CreateCampaign(c *gin.Context) {
	organization, ok := ownOrganization(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	goalAmount, err := strconv.ParseFloat(c.PostForm("goal_amount"), 64)
	if err != nil || goalAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Goal amount must be greater than 0."})
		return
	}
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required."})
		return
	}

	campaign := models.Campaign{
		OrganizationID: organization.ID,
		Title:          title,
		Description:    description,
		GoalAmount:     goalAmount,
		Status:         models.CampaignActive,
		StartDate:      time.Now(),
	}

	if categoryID := c.PostForm("category_id"); categoryID != "" {
		id, err := strconv.ParseUint(categoryID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id."})
			return
		}
		cid := uint(id)
		campaign.CategoryID = &cid
	}

	if endDate := c.PostForm("end_date"); endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date."})
			return
		}
		campaign.EndDate = &parsed
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := utils.SaveUploadedFile(c, file, "campaigns")
		if err != nil {
			log.Printf("Failed to store campaign image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image."})
			return
		}
		campaign.ImageURL = url
	}

	if err := utils.DB.Create(&campaign).Error; err != nil {
		log.Printf("Failed to create campaign: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign."})
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// MyCampaigns lists campaigns owned by the authenticated organization.
func MyCampaigns(c *gin.Context) {
	organization, ok := ownOrganization(c)
	if !ok {
		return
	}

	var campaignsList []models.Campaign
	if err := utils.DB.Where("organization_id = ?", organization.ID).
		Order("created_at DESC").
		Find(&campaignsList).Error; err != nil {
		log.Printf("Failed to list campaigns: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": campaignsList})
}

// UpdateCampaign applies a partial update to one of the organization's
// own campaigns.
func UpdateCampaign(c *gin.Context) {
	organization, ok := ownOrganization(c)
	if !ok {
		return
	}

	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign id."})
		return
	}

	var campaign models.Campaign
	if err := utils.DB.Where("id = ? AND organization_id = ?", campaignID, organization.ID).
		First(&campaign).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found."})
		return
	}

	updates := make(map[string]interface{})

	if title := c.PostForm("title"); title != "" {
		updates["title"] = title
	}
	if description := c.PostForm("description"); description != "" {
		updates["description"] = description
	}
	if goal := c.PostForm("goal_amount"); goal != "" {
		goalAmount, err := strconv.ParseFloat(goal, 64)
		if err != nil || goalAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Goal amount must be greater than 0."})
			return
		}
		updates["goal_amount"] = goalAmount
	}
	if status := c.PostForm("status"); status != "" {
		switch models.CampaignStatus(status) {
		case models.CampaignActive, models.CampaignCompleted, models.CampaignPaused:
			updates["status"] = status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign status."})
			return
		}
	}
	if endDate := c.PostForm("end_date"); endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date."})
			return
		}
		updates["end_date"] = parsed
	}
	if file, err := c.FormFile("image"); err == nil {
		url, err := utils.SaveUploadedFile(c, file, "campaigns")
		if err != nil {
			log.Printf("Failed to store campaign image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image."})
			return
		}
		updates["image_url"] = url
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&campaign).Updates(updates).Error; err != nil {
			log.Printf("Failed to update campaign: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign."})
			return
		}
	}

	c.JSON(http.StatusOK, campaign)
}
