package organizations

import (
	"log"
	"net/http"
	"strconv"

	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
)

// ListOrganizations is the public organization listing.
func ListOrganizations(c *gin.Context) {
	var organizationsList []models.Organization
	if err := utils.DB.Order("name").Find(&organizationsList).Error; err != nil {
		log.Printf("Failed to list organizations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": organizationsList})
}

// GetOrganization returns a single organization by id.
func GetOrganization(c *gin.Context) {
	organizationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization id."})
		return
	}

	var organization models.Organization
	if err := utils.DB.First(&organization, organizationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found."})
		return
	}

	c.JSON(http.StatusOK, organization)
}

// OrganizationReports is the public report listing for an organization.
func OrganizationReports(c *gin.Context) {
	organizationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization id."})
		return
	}

	var reports []models.Report
	if err := utils.DB.Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		log.Printf("Failed to list reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": reports})
}
