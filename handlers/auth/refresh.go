package auth

import (
	"net/http"

	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
)

// RefreshToken exchanges a valid refresh token for a fresh pair.
func RefreshToken(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required."})
		return
	}

	userID, err := utils.ParseRefreshToken(input.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	var user models.User
	if err := utils.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "User is not active."})
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate tokens."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}
