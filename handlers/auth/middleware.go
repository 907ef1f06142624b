package auth

import (
	"net/http"

	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		userID, err := utils.ExtractUserIDFromToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		var user models.User
		if err := utils.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "User is not active."})
			c.Abort()
			return
		}

		c.Set("user", user)

		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userInterface.(models.User)
	return user, ok
}

// RequireDonor rejects requests from accounts whose role cannot donate.
func RequireDonor() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.Role.CanDonate() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access is allowed only for donors."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOrganization rejects requests from accounts whose role cannot
// manage campaigns.
func RequireOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.Role.CanManageCampaigns() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access is allowed only for organizations."})
			c.Abort()
			return
		}
		c.Next()
	}
}
