package utils

import (
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendNotificationEmail mirrors an in-app notification to the user's
// email address. Failures are logged and swallowed; email is a
// best-effort channel.
func SendNotificationEmail(email string, subject string, body string) {
	if email == "" || os.Getenv("SMTP_HOST") == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send notification email to %s: %v", email, err)
	}
}
