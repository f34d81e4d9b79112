package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ValidWebhookSignature checks the hex-encoded HMAC-SHA256 the membership
// provider sends with each delivery. An empty secret disables the check so
// local dev can post events by hand.
func ValidWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(mac.Sum(nil), got)
}
