package stats

import (
	"log"
	"net/http"
	"sort"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
)

type monthlyEntry struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// monthlyBreakdown folds donations into per-calendar-month totals,
// ordered by month ascending.
func monthlyBreakdown(donations []models.Donation) []monthlyEntry {
	totals := make(map[string]float64)
	for _, d := range donations {
		totals[d.CreatedAt.Format("2006-01")] += d.Amount
	}

	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	breakdown := make([]monthlyEntry, 0, len(months))
	for _, month := range months {
		breakdown = append(breakdown, monthlyEntry{Month: month, Total: totals[month]})
	}
	return breakdown
}

// DonorStats aggregates the donor's donations on read; nothing here is
// cached.
func DonorStats(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var donations []models.Donation
	if err := utils.DB.Where("donor_id = ?", user.ID).Find(&donations).Error; err != nil {
		log.Printf("Failed to load donor stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics."})
		return
	}

	var totalAmount float64
	for _, d := range donations {
		totalAmount += d.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"total_amount":    totalAmount,
		"total_donations": len(donations),
		"monthly":         monthlyBreakdown(donations),
	})
}

// OrganizationStats aggregates the organization's incoming donations on
// read.
func OrganizationStats(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var organization models.Organization
	if err := utils.DB.Where("user_id = ?", user.ID).First(&organization).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User has no organization"})
		return
	}

	var donations []models.Donation
	if err := utils.DB.Where("organization_id = ?", organization.ID).Find(&donations).Error; err != nil {
		log.Printf("Failed to load organization stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics."})
		return
	}

	var totalRaised float64
	donors := make(map[uint]struct{})
	for _, d := range donations {
		totalRaised += d.Amount
		donors[d.DonorID] = struct{}{}
	}

	var campaignsCount int64
	if err := utils.DB.Model(&models.Campaign{}).
		Where("organization_id = ?", organization.ID).
		Count(&campaignsCount).Error; err != nil {
		log.Printf("Failed to count campaigns: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_raised":    totalRaised,
		"donors_count":    len(donors),
		"campaigns_count": campaignsCount,
		"monthly":         monthlyBreakdown(donations),
	})
}
