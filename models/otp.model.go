package models

import (
	"time"

	"gorm.io/gorm"
)

// Verification tracks an OTP send handed off to the verification vendor.
// The code itself lives with the vendor; this row only records the attempt
// so resends can be audited and stale rows purged.
type Verification struct {
	gorm.Model
	Phone     string    `gorm:"size:20;not null;index" json:"phone"`
	VendorSID string    `gorm:"size:64" json:"vendor_sid,omitempty"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Approved  bool      `gorm:"default:false" json:"approved"`
}
