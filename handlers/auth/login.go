package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RequestDonorLogin sends a login OTP to an already-active donor.
func RequestDonorLogin(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone is required."})
		return
	}

	var user models.User
	if err := utils.DB.Where("phone = ? AND role = ?", input.Phone, models.RoleDonor).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found."})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "User is not active."})
		return
	}

	if _, err := issueOTP(utils.DB, input.Phone, models.OTPPurposeLogin); err != nil {
		log.Printf("Failed to issue login OTP: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "otp_sent"})
}

// VerifyDonorLogin checks the login OTP and issues the token pair.
func VerifyDonorLogin(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone and code are required."})
		return
	}

	// Same ordering as registration verify: the account is resolved
	// before the code is consumed.
	var user models.User
	if err := utils.DB.Where("phone = ? AND role = ?", input.Phone, models.RoleDonor).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found."})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "User is not active."})
		return
	}

	if err := consumeOTP(utils.DB, input.Phone, models.OTPPurposeLogin, input.Code); err != nil {
		switch {
		case errors.Is(err, errOTPNotFound), errors.Is(err, errOTPExpired), errors.Is(err, errOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to verify login OTP: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP."})
		}
		return
	}

	now := time.Now()
	utils.DB.Model(&user).Update("last_login_at", &now)

	access, refresh, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate tokens."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// OrgLogin authenticates an organization account with phone + password.
// No OTP is involved.
func OrgLogin(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone and password are required."})
		return
	}

	var user models.User
	if err := utils.DB.Where("phone = ? AND role = ?", input.Phone, models.RoleOrg).
		First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone or password."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone or password."})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "User is not active."})
		return
	}

	now := time.Now()
	utils.DB.Model(&user).Update("last_login_at", &now)

	access, refresh, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate tokens."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// RegisterOrg creates an organization account with a pending
// verification status.
func RegisterOrg(c *gin.Context) {
	var input struct {
		Phone       string `json:"phone" binding:"required"`
		Password    string `json:"password" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Email       string `json:"email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone, password and name are required."})
		return
	}

	var existing models.User
	if err := utils.DB.Where("phone = ?", input.Phone).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone is already in use."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to look up user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register organization."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password."})
		return
	}

	user := models.User{
		Phone:    input.Phone,
		Email:    input.Email,
		FullName: input.Name,
		Password: string(hashedPassword),
		Role:     models.RoleOrg,
		IsActive: true,
	}
	organization := models.Organization{
		Name:           input.Name,
		Description:    input.Description,
		Email:          input.Email,
		Phone:          input.Phone,
		VerifiedStatus: models.VerificationPending,
	}

	err = utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		organization.UserID = user.ID
		return tx.Create(&organization).Error
	})
	if err != nil {
		log.Printf("Failed to create organization: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register organization."})
		return
	}

	c.JSON(http.StatusCreated, organization)
}
