package payments

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CompletePayment is the stub settlement step: it transitions the
// payment and its donation to completed, refreshes the cached
// aggregates and writes the two lifecycle notifications, all in one
// transaction. Calling it again for the same payment is idempotent.
func CompletePayment(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment id."})
		return
	}

	// Ownership check: a payment that exists but belongs to another
	// donor is indistinguishable from a missing one.
	var payment models.Payment
	if err := utils.DB.Where("id = ? AND donor_id = ?", paymentID, user.ID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found."})
		return
	}

	if payment.Status == models.PaymentCompleted {
		c.JSON(http.StatusOK, gin.H{
			"status":      "already_completed",
			"payment_id":  payment.ID,
			"donation_id": payment.DonationID,
		})
		return
	}

	var (
		donation     models.Donation
		organization models.Organization
		raced        bool
	)

	err = utils.DB.Transaction(func(tx *gorm.DB) error {
		// Compare-and-swap on status: only one of two concurrent
		// completion requests can move the row out of pending.
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentPending).
			Update("status", models.PaymentCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			raced = true
			return nil
		}

		if err := tx.First(&donation, payment.DonationID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Donation{}).
			Where("id = ?", donation.ID).
			Update("status", models.DonationCompleted).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Organization{}).
			Where("id = ?", donation.OrganizationID).
			Update("total_raised", gorm.Expr("total_raised + ?", payment.Amount)).Error; err != nil {
			return err
		}

		if donation.CampaignID != nil {
			var donorsCount int64
			if err := tx.Model(&models.Donation{}).
				Where("campaign_id = ? AND status = ?", *donation.CampaignID, models.DonationCompleted).
				Distinct("donor_id").
				Count(&donorsCount).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Campaign{}).
				Where("id = ?", *donation.CampaignID).
				Updates(map[string]interface{}{
					"raised_amount": gorm.Expr("raised_amount + ?", payment.Amount),
					"donors_count":  donorsCount,
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.First(&organization, donation.OrganizationID).Error; err != nil {
			return err
		}

		donorNote := models.Notification{
			UserID:  user.ID,
			Title:   "Payment completed",
			Message: fmt.Sprintf("Thank you! Your donation of %.2f was received.", payment.Amount),
		}
		if err := tx.Create(&donorNote).Error; err != nil {
			return err
		}

		orgNote := models.Notification{
			UserID:  organization.UserID,
			Title:   "New donation",
			Message: fmt.Sprintf("A donation of %.2f has been received.", payment.Amount),
		}
		return tx.Create(&orgNote).Error
	})
	if err != nil {
		log.Printf("Failed to complete payment %d: %v", payment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete payment."})
		return
	}

	if raced {
		c.JSON(http.StatusOK, gin.H{
			"status":      "already_completed",
			"payment_id":  payment.ID,
			"donation_id": payment.DonationID,
		})
		return
	}

	// Email mirrors are best effort and happen outside the transaction.
	utils.SendNotificationEmail(user.Email, "Payment completed",
		fmt.Sprintf("Thank you! Your donation of %.2f was received.", payment.Amount))
	var orgUser models.User
	if err := utils.DB.First(&orgUser, organization.UserID).Error; err == nil {
		utils.SendNotificationEmail(orgUser.Email, "New donation",
			fmt.Sprintf("A donation of %.2f has been received.", payment.Amount))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"payment_id":  payment.ID,
		"donation_id": donation.ID,
	})
}
