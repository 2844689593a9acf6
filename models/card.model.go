package models

import (
	"time"
)

// Card networks derived from the leading digits of the submitted number.
const (
	NetworkVisa       = "VISA"
	NetworkMastercard = "MASTERCARD"
	NetworkRupay      = "RUPAY"
	NetworkAmex       = "AMEX"
)

// Card statuses. Deleted cards stay in the table so the same digits can be
// re-registered by reviving the row.
const (
	CardStatusActive  = "active"
	CardStatusDeleted = "deleted"
)

// Card stores payment instrument metadata only. The full number is reduced
// to the last four digits plus a sha256 fingerprint before it reaches this
// struct; the CVV is never persisted.
type Card struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID        string    `gorm:"size:20;not null;index" json:"-"`
	Network        string    `gorm:"size:20;not null" json:"network"`
	BankName       string    `gorm:"size:100;not null" json:"bankName"`
	HolderName     string    `gorm:"size:100;not null" json:"holderName"`
	ExpiryDate     string    `gorm:"size:5;not null" json:"expiryDate"` // MM/YY
	LastFourDigits string    `gorm:"size:4;not null;index" json:"lastFourDigits"`
	Fingerprint    string    `gorm:"size:64;not null" json:"-"`
	Status         string    `gorm:"size:10;not null;default:'active'" json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
