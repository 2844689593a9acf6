package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"offersense/models"
)

var expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// StripNonDigits removes everything but 0-9 from a card number as typed
// (spaces, dashes).
func StripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LastFour returns the trailing four digits of a card number.
func LastFour(cardNumber string) (string, bool) {
	digits := StripNonDigits(cardNumber)
	if len(digits) < 4 {
		return "", false
	}
	return digits[len(digits)-4:], true
}

// DetectNetwork derives the card network from the leading digits.
// Returns an empty string when the prefix matches no supported network.
func DetectNetwork(cardNumber string) string {
	digits := StripNonDigits(cardNumber)
	if len(digits) < 4 {
		return ""
	}

	switch {
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return models.NetworkAmex
	case digits[0] == '4':
		return models.NetworkVisa
	}

	// RuPay BINs before Mastercard: 508 overlaps the 5x range.
	for _, p := range []string{"508", "60", "65", "81", "82"} {
		if strings.HasPrefix(digits, p) {
			return models.NetworkRupay
		}
	}

	if digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5' {
		return models.NetworkMastercard
	}
	if four := digits[:4]; four >= "2221" && four <= "2720" {
		return models.NetworkMastercard
	}

	return ""
}

// Fingerprint returns the sha256 hex digest of the stripped card number.
// This is the only representation of the full number kept at rest.
func Fingerprint(cardNumber string) string {
	sum := sha256.Sum256([]byte(StripNonDigits(cardNumber)))
	return hex.EncodeToString(sum[:])
}

// ValidExpiry reports whether s is in MM/YY form. Whether the date has
// passed is not checked here; expired-card rejection is a client concern.
func ValidExpiry(s string) bool {
	return expiryRe.MatchString(s)
}

// NormalizePhone coerces a phone token toward E.164 by prepending a '+'
// when missing. No further validation happens at this layer.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if !strings.HasPrefix(phone, "+") {
		return "+" + phone
	}
	return phone
}
