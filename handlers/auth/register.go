package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterDonor starts phone-based donor onboarding: it get-or-creates
// an inactive donor account for the phone and sends a fresh OTP.
func RegisterDonor(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		FullName string `json:"full_name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone and full name are required."})
		return
	}

	var user models.User
	err := utils.DB.Where("phone = ?", input.Phone).First(&user).Error
	switch {
	case err == nil:
		if user.Role != models.RoleDonor {
			c.JSON(http.StatusConflict, gin.H{"error": "Phone is already in use."})
			return
		}
		if user.IsActive {
			c.JSON(http.StatusConflict, gin.H{"error": "User already registered."})
			return
		}
		// Re-registration of a never-verified account refreshes the name.
		if err := utils.DB.Model(&user).Update("full_name", input.FullName).Error; err != nil {
			log.Printf("Failed to update donor name: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register donor."})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Phone:    input.Phone,
			FullName: input.FullName,
			Role:     models.RoleDonor,
			IsActive: false,
		}
		err := utils.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&models.DonorProfile{UserID: user.ID}).Error
		})
		if err != nil {
			log.Printf("Failed to create donor: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register donor."})
			return
		}
	default:
		log.Printf("Failed to look up donor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register donor."})
		return
	}

	if _, err := issueOTP(utils.DB, input.Phone, models.OTPPurposeRegister); err != nil {
		log.Printf("Failed to issue registration OTP: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "otp_sent"})
}

// VerifyDonorRegistration checks the registration OTP, activates the
// donor account and issues the session token pair.
func VerifyDonorRegistration(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone and code are required."})
		return
	}

	// The donor row is resolved before the code is consumed; a consumed
	// code with no account to activate would leave the donor stuck.
	var user models.User
	if err := utils.DB.Where("phone = ? AND role = ?", input.Phone, models.RoleDonor).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found."})
		return
	}

	if err := consumeOTP(utils.DB, input.Phone, models.OTPPurposeRegister, input.Code); err != nil {
		switch {
		case errors.Is(err, errOTPNotFound), errors.Is(err, errOTPExpired), errors.Is(err, errOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to verify registration OTP: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP."})
		}
		return
	}

	now := time.Now()
	if err := utils.DB.Model(&user).Updates(map[string]interface{}{
		"is_active":     true,
		"last_login_at": &now,
	}).Error; err != nil {
		log.Printf("Failed to activate donor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate account."})
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate tokens."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}
