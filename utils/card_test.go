package utils

import (
	"testing"

	"offersense/models"

	"github.com/stretchr/testify/assert"
)

func TestDetectNetwork(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{"visa", "4242424242424242", models.NetworkVisa},
		{"mastercard 51-55", "5500005555555559", models.NetworkMastercard},
		{"mastercard 2-series", "2221000000000009", models.NetworkMastercard},
		{"amex 34", "340000000000009", models.NetworkAmex},
		{"amex 37", "370000000000002", models.NetworkAmex},
		{"rupay 60", "6073849700004947", models.NetworkRupay},
		{"rupay 65", "6521674378958342", models.NetworkRupay},
		{"rupay 508", "5085391736249782", models.NetworkRupay},
		{"rupay 81", "8172394857612345", models.NetworkRupay},
		{"spaces and dashes", "4242 4242-4242 4242", models.NetworkVisa},
		{"unknown prefix", "9999999999999999", ""},
		{"too short", "42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectNetwork(tt.number))
		})
	}
}

func TestLastFour(t *testing.T) {
	got, ok := LastFour("4242-4242-4242-4242")
	assert.True(t, ok)
	assert.Equal(t, "4242", got)

	got, ok = LastFour("visa ending 1234")
	assert.True(t, ok)
	assert.Equal(t, "1234", got)

	_, ok = LastFour("123")
	assert.False(t, ok)

	_, ok = LastFour("")
	assert.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	// Formatting must not change the fingerprint.
	assert.Equal(t, Fingerprint("4242424242424242"), Fingerprint("4242 4242 4242 4242"))
	assert.NotEqual(t, Fingerprint("4242424242424242"), Fingerprint("4242424242424241"))
	assert.Len(t, Fingerprint("4242424242424242"), 64)
}

func TestValidExpiry(t *testing.T) {
	assert.True(t, ValidExpiry("01/27"))
	assert.True(t, ValidExpiry("12/30"))
	assert.False(t, ValidExpiry("13/27"))
	assert.False(t, ValidExpiry("00/27"))
	assert.False(t, ValidExpiry("1/27"))
	assert.False(t, ValidExpiry("01-27"))
	assert.False(t, ValidExpiry("01/2027"))
	assert.False(t, ValidExpiry(""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15551234567", NormalizePhone("15551234567"))
	assert.Equal(t, "+15551234567", NormalizePhone("+15551234567"))
	assert.Equal(t, "+15551234567", NormalizePhone(" 15551234567 "))
	assert.Equal(t, "", NormalizePhone("  "))
}
