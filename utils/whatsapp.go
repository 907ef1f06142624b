package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// greenAPIMessage is the payload shape of the Green API sendMessage call.
type greenAPIMessage struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

var whatsappBaseURL = "https://api.green-api.com"

// SendWhatsAppMessage delivers a text message to the given phone number
// via the Green API. Delivery failures are reported as a boolean; they
// are never propagated as errors to callers.
func SendWhatsAppMessage(phone string, message string) bool {
	instanceID := os.Getenv("GREEN_API_INSTANCE_ID")
	token := os.Getenv("GREEN_API_TOKEN")
	if instanceID == "" || token == "" {
		log.Println("Green API credentials are not configured; skipping WhatsApp delivery")
		return false
	}

	phoneClean := strings.NewReplacer("+", "", " ", "").Replace(phone)

	payload := greenAPIMessage{
		ChatID:  phoneClean + "@c.us",
		Message: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal WhatsApp message: %v", err)
		return false
	}

	url := fmt.Sprintf("%s/waInstance%s/sendMessage/%s", whatsappBaseURL, instanceID, token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Failed to send WhatsApp message: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to send WhatsApp message: received status code %d", resp.StatusCode)
		return false
	}

	return true
}

// OTPMessage renders the delivery text for a one-time code.
func OTPMessage(code string) string {
	template := os.Getenv("OTP_MESSAGE_TEMPLATE")
	if template == "" {
		template = "Your Finic confirmation code: {code}"
	}
	return strings.ReplaceAll(template, "{code}", code)
}
