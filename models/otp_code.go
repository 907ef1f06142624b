package models

import "time"

// OTPPurpose distinguishes registration codes from login codes; a code
// issued for one purpose cannot verify the other.
type OTPPurpose string

const (
	OTPPurposeRegister OTPPurpose = "register"
	OTPPurposeLogin    OTPPurpose = "login"
)

// OTPCode is an ephemeral one-time code keyed by (phone, purpose). It is
// deleted on successful verification or when expiry is detected.
type OTPCode struct {
	ID        uint       `gorm:"primaryKey"`
	Phone     string     `gorm:"index:idx_otp_phone_purpose;not null"`
	Purpose   OTPPurpose `gorm:"index:idx_otp_phone_purpose;type:varchar(20);not null"`
	Code      string     `gorm:"type:varchar(6);not null"`
	CreatedAt time.Time
}

// ExpiredAt reports whether the code is past its time-to-live at now.
func (o *OTPCode) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.After(o.CreatedAt.Add(ttl))
}
