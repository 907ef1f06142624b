package notifications

import (
	"log"
	"net/http"
	"strconv"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
)

// MyNotifications lists the authenticated user's notifications, newest
// first.
func MyNotifications(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var notificationsList []models.Notification
	if err := utils.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notificationsList).Error; err != nil {
		log.Printf("Failed to list notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": notificationsList})
}

// MarkRead flips the read flag of one of the user's notifications. It
// is the only mutation notifications support.
func MarkRead(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id."})
		return
	}

	var notification models.Notification
	if err := utils.DB.Where("id = ? AND user_id = ?", notificationID, user.ID).
		First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found."})
		return
	}

	if err := utils.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		log.Printf("Failed to mark notification read: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
