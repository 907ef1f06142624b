package auth

import (
	"errors"
	"math/rand"
	"time"

	"donation-platform-server/models"
	"donation-platform-server/utils"

	"gorm.io/gorm"
)

// OTP validity duration
const otpValidityDuration = 10 * time.Minute

var (
	errOTPNotFound = errors.New("OTP not found.")
	errOTPExpired  = errors.New("OTP expired.")
	errOTPInvalid  = errors.New("Invalid OTP.")
)

// generateOTP generates a 4-digit OTP
func generateOTP() string {
	source := rand.NewSource(time.Now().UnixNano())
	r := rand.New(source)
	const digits = "0123456789"
	otp := make([]byte, 4)
	for i := range otp {
		otp[i] = digits[r.Intn(len(digits))]
	}
	return string(otp)
}

// deliverOTP sends the code over WhatsApp. Swappable in tests.
var deliverOTP = func(phone string, code string) bool {
	return utils.SendWhatsAppMessage(phone, utils.OTPMessage(code))
}

// issueOTP discards any unconsumed code for (phone, purpose), stores a
// fresh one and hands it to the delivery channel. The delivery result is
// returned but callers respond with otp_sent regardless: OTP delivery is
// best effort and its failures are not surfaced to the client.
func issueOTP(db *gorm.DB, phone string, purpose models.OTPPurpose) (bool, error) {
	if err := db.Where("phone = ? AND purpose = ?", phone, purpose).
		Delete(&models.OTPCode{}).Error; err != nil {
		return false, err
	}

	code := generateOTP()
	otp := models.OTPCode{
		Phone:   phone,
		Purpose: purpose,
		Code:    code,
	}
	if err := db.Create(&otp).Error; err != nil {
		return false, err
	}

	return deliverOTP(phone, code), nil
}

// consumeOTP validates the code stored for (phone, purpose). An expired
// row is deleted so no further attempt can succeed against it; a
// mismatched code leaves the row intact so a correct retry still works.
// On success the row is deleted.
func consumeOTP(db *gorm.DB, phone string, purpose models.OTPPurpose, code string) error {
	var otp models.OTPCode
	err := db.Where("phone = ? AND purpose = ?", phone, purpose).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errOTPNotFound
		}
		return err
	}

	if otp.ExpiredAt(time.Now(), otpValidityDuration) {
		if err := db.Delete(&otp).Error; err != nil {
			return err
		}
		return errOTPExpired
	}

	if otp.Code != code {
		return errOTPInvalid
	}

	return db.Delete(&otp).Error
}
